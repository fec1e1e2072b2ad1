package ingest

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/joseph-ayodele/cardscan/internal/async"
	"github.com/joseph-ayodele/cardscan/internal/common"
)

type Usecase struct {
	Processor async.FileProcessor
	Logger    *slog.Logger
}

func NewUsecase(p async.FileProcessor, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{Processor: p, Logger: logger}
}

// IngestPath resolves path and runs it through the processor.
func (u *Usecase) IngestPath(ctx context.Context, path string, force bool) (IngestionResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return IngestionResult{SourcePath: path, Err: err.Error()}, fmt.Errorf("abs path: %w", err)
	}
	if !AllowedExt(filepath.Ext(abs)) {
		err := fmt.Errorf("%w: unsupported or missing extension %q", common.ErrUnsupportedFormat, filepath.Ext(abs))
		return IngestionResult{SourcePath: abs, Err: err.Error()}, err
	}

	scan, err := u.Processor.Process(ctx, abs, force)
	if err != nil {
		u.Logger.Error("ingest failed", "path", abs, "error", err)
		return IngestionResult{SourcePath: abs, Err: err.Error()}, err
	}
	return IngestionResult{
		SourcePath:  abs,
		ScanID:      scan.ID.String(),
		HashHex:     hex.EncodeToString(scan.ContentHash),
		Status:      scan.Status,
		NeedsReview: scan.NeedsReview,
	}, nil
}

// IngestDirectory walks root and calls IngestPath for each supported file.
// Per-file failures are recorded in the results; only a failed walk returns an error.
func (u *Usecase) IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error) {
	paths, stats, err := WalkDirectory(root, skipHidden)
	if err != nil {
		return nil, stats, err
	}

	results := make([]IngestionResult, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, stats, err
		}
		res, err := u.IngestPath(ctx, p, false)
		results = append(results, res)
		switch {
		case err != nil:
			stats.Failed++
		case res.NeedsReview:
			stats.Succeeded++
			stats.NeedsReview++
		default:
			stats.Succeeded++
		}
	}
	u.Logger.Info("directory ingested", "root", root,
		"matched", stats.Matched, "succeeded", stats.Succeeded,
		"needs_review", stats.NeedsReview, "failed", stats.Failed)
	return results, stats, nil
}
