package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/cardscan/internal/async"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/export"
	"github.com/joseph-ayodele/cardscan/internal/extract"
	"github.com/joseph-ayodele/cardscan/internal/ingest"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

const (
	MaxTextLength = 64 << 10
	MaxListLimit  = 1000
)

type CardScanService struct {
	parser   extract.ContactParser
	scans    repository.ScanRepository // nil: stateless, only ParseText works
	ingestor ingest.Ingestor
	queue    async.Queue // nil: IngestDirectory runs synchronously
	exporter *export.Service
	logger   *slog.Logger
}

func NewCardScanService(
	parser extract.ContactParser,
	scans repository.ScanRepository,
	ingestor ingest.Ingestor,
	queue async.Queue,
	logger *slog.Logger,
) *CardScanService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CardScanService{parser: parser, scans: scans, ingestor: ingestor, queue: queue, logger: logger}
	if scans != nil {
		s.exporter = export.NewService(scans, logger)
	}
	return s
}

// ParseText parses card text without touching storage.
func (s *CardScanService) ParseText(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	text := req.GetValue()
	v := common.NewValidator().Field("text", text, common.MaxLength(MaxTextLength))
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	c := s.parser.Parse(text)
	common.LoggerFromContext(ctx, s.logger).Info("parsed text",
		"bytes", len(text),
		"valid_for_saving", c.IsValidForSaving(),
		"overall", c.Confidence.Overall(),
	)
	return toStruct(export.NewDocument(c))
}

func (s *CardScanService) GetScan(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := strings.TrimSpace(req.GetValue())
	v := common.NewValidator().Field("id", id, common.Required, common.UUID)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	if s.scans == nil {
		return nil, errNoStorage
	}
	scan, err := s.scans.GetByID(ctx, uuid.MustParse(id))
	if err != nil {
		common.LoggerFromContext(ctx, s.logger).Warn("get scan failed", "scan_id", id, "error", err)
		return nil, common.ToStatus(common.WrapError(err, "scan "+id))
	}
	return toStruct(newScanDocument(*scan))
}

func (s *CardScanService) ListScans(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.Struct, error) {
	limit := int(req.GetValue())
	if limit < 0 || limit > MaxListLimit {
		return nil, common.InvalidArgumentErrorf("limit must be between 0 and %d", MaxListLimit)
	}
	if s.scans == nil {
		return nil, errNoStorage
	}
	if limit == 0 {
		limit = 50
	}
	scans, err := s.scans.List(ctx, limit)
	if err != nil {
		return nil, common.ToStatus(err)
	}
	docs := make([]scanDocument, 0, len(scans))
	for _, sc := range scans {
		docs = append(docs, newScanDocument(sc))
	}
	return toStruct(map[string]any{"scans": docs})
}

func (s *CardScanService) ExportScans(ctx context.Context, req *wrapperspb.Int32Value) (*wrapperspb.BytesValue, error) {
	limit := int(req.GetValue())
	if limit < 0 {
		return nil, common.InvalidArgumentError("limit must not be negative")
	}
	if s.exporter == nil {
		return nil, errNoStorage
	}
	b, err := s.exporter.ExportScansXLSX(ctx, limit)
	if err != nil {
		common.LoggerFromContext(ctx, s.logger).Error("export.xlsx.failed", "err", err)
		return nil, common.ToStatus(err)
	}
	return wrapperspb.Bytes(b), nil
}

var errNoStorage = status.Error(codes.FailedPrecondition, "no scan storage configured")

// scanDocument is the wire shape of a stored scan.
type scanDocument struct {
	ID            string          `json:"id"`
	SourcePath    string          `json:"source_path"`
	ContentHash   string          `json:"content_hash"`
	Format        string          `json:"format"`
	Method        string          `json:"method"`
	OCRConfidence float32         `json:"ocr_confidence"`
	Status        string          `json:"status"`
	NeedsReview   bool            `json:"needs_review"`
	CreatedAt     string          `json:"created_at"`
	Contact       export.Document `json:"contact"`
}

func newScanDocument(s entity.Scan) scanDocument {
	return scanDocument{
		ID:            s.ID.String(),
		SourcePath:    s.SourcePath,
		ContentHash:   hex.EncodeToString(s.ContentHash),
		Format:        s.Format,
		Method:        s.Method,
		OCRConfidence: s.OCRConfidence,
		Status:        s.Status,
		NeedsReview:   s.NeedsReview,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
		Contact:       export.NewDocument(s.Contact),
	}
}

// toStruct converts v through its JSON form into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, common.InternalErrorf("marshal response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, common.InternalErrorf("decode response: %v", err)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, common.InternalError(fmt.Sprintf("build struct: %v", err))
	}
	return st, nil
}
