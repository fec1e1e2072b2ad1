package processor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/extract"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

// Processor coordinates text extraction, then contact parsing, then persistence.
type Processor struct {
	Logger *slog.Logger
	OCR    *OCRStage
	Parse  *ParseStage
	Scans  repository.ScanRepository // nil disables dedupe and persistence
}

func NewProcessor(logger *slog.Logger, tx extract.TextExtractor, p extract.ContactParser, scans repository.ScanRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger: logger,
		OCR:    NewOCRStage(tx, logger),
		Parse:  NewParseStage(p, logger),
		Scans:  scans,
	}
}

// ProcessFile runs the pipeline for path, reusing a stored scan of identical content.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*entity.Scan, error) {
	return p.Process(ctx, path, false)
}

// Process runs the pipeline for path. With force set, stored scans are ignored and overwritten.
func (p *Processor) Process(ctx context.Context, path string, force bool) (*entity.Scan, error) {
	src, err := NewSource(path)
	if err != nil {
		p.Logger.Error("processor.source.failed", "path", path, "err", err)
		return nil, err
	}

	// 1) dedupe by content hash; failed scans are always retried
	if p.Scans != nil && !force {
		existing, err := p.Scans.GetByHash(ctx, src.Hash)
		switch {
		case err == nil && existing.Status != string(constants.ScanStatusFailed):
			p.Logger.Info("processor.dedupe.hit", "path", path, "scan_id", existing.ID)
			return existing, nil
		case err != nil && !errors.Is(err, common.ErrNotFound):
			p.Logger.Error("processor.dedupe.failed", "path", path, "err", err)
			return nil, err
		}
	}

	// 2) text extraction
	res, lowConf, err := p.OCR.Run(ctx, src)
	if err != nil {
		p.Logger.Error("processor.ocr.failed", "path", path, "err", err)
		p.saveFailure(ctx, src, res)
		return nil, err
	}
	p.Logger.Info("processor.ocr.ok",
		"path", path,
		"method", res.Method,
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)

	// 3) parse once per extraction
	scan := p.Parse.Run(src, res, lowConf)
	p.Logger.Info("processor.parse.ok",
		"path", path,
		"name", scan.Contact.FullName(),
		"phones", len(scan.Contact.PhoneNumbers),
		"emails", len(scan.Contact.Emails),
		"overall", scan.Contact.Confidence.Overall(),
		"needs_review", scan.NeedsReview,
	)

	// 4) persist
	if p.Scans == nil {
		return scan, nil
	}
	if err := p.Scans.Save(ctx, scan); err != nil {
		p.Logger.Error("processor.save.failed", "path", path, "err", err)
		return scan, err
	}
	p.Logger.Info("processor.save.ok", "path", path, "scan_id", scan.ID, "status", scan.Status)
	return scan, nil
}

func (p *Processor) saveFailure(ctx context.Context, src Source, res extract.TextExtractionResult) {
	if p.Scans == nil {
		return
	}
	failed := &entity.Scan{
		SourcePath:  src.Path,
		ContentHash: src.Hash,
		Format:      src.Format,
		Method:      res.Method,
		Status:      string(constants.ScanStatusFailed),
		NeedsReview: true,
		Contact:     p.Parse.Parser.Parse(""),
	}
	if err := p.Scans.Save(ctx, failed); err != nil {
		p.Logger.Error("processor.save.failed", "path", src.Path, "err", err)
	}
}
