package server

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/cardscan/internal/async"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/ingest"
)

// IngestFile processes one card file on the server's filesystem and waits for the result.
func (s *CardScanService) IngestFile(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	path := strings.TrimSpace(req.GetValue())
	v := common.NewValidator().Field("path", path, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	if s.ingestor == nil {
		return nil, errNoStorage
	}
	logger := common.LoggerFromContext(ctx, s.logger)

	logger.Info("starting file ingest", "path", path)
	r, err := s.ingestor.IngestPath(ctx, path, false)
	if err != nil {
		logger.Error("pipeline.failed", "path", path, "err", err)
		return nil, common.ToStatus(err)
	}
	logger.Info("file ingest succeeded", "path", r.SourcePath, "scan_id", r.ScanID, "status", r.Status)
	return toStruct(r)
}

// IngestDirectory queues every supported file under a directory, or processes them
// inline when the service runs without a queue.
func (s *CardScanService) IngestDirectory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	root := strings.TrimSpace(req.GetValue())
	v := common.NewValidator().Field("root_path", root, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx, s.logger)

	if s.queue != nil {
		paths, stats, err := ingest.WalkDirectory(root, true)
		if err != nil {
			return nil, common.InvalidArgumentErrorf("walk %s: %v", root, err)
		}
		traceID := common.RequestIDFromContext(ctx)
		queued := 0
		for _, p := range paths {
			if err := s.queue.Enqueue(ctx, async.Job{Path: p, SubmittedAt: time.Now(), TraceID: traceID}); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					logger.Warn("directory enqueue interrupted", "root", root, "queued", queued, "error", ctxErr)
					return nil, status.FromContextError(ctxErr).Err()
				}
				logger.Warn("enqueue failed", "path", p, "error", err)
				continue
			}
			queued++
		}
		logger.Info("directory queued", "root", root, "matched", stats.Matched, "queued", queued)
		return toStruct(map[string]any{"stats": stats, "queued": queued})
	}

	if s.ingestor == nil {
		return nil, errNoStorage
	}
	results, stats, err := s.ingestor.IngestDirectory(ctx, root, true)
	if err != nil {
		return nil, common.InvalidArgumentErrorf("ingest %s: %v", root, err)
	}
	return toStruct(map[string]any{"stats": stats, "results": results})
}
