package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/extract"
	"github.com/joseph-ayodele/cardscan/internal/ocr"
)

// Source identifies one input file by path and content.
type Source struct {
	Path   string
	Hash   []byte
	Format string
}

func (s Source) HashHex() string { return hex.EncodeToString(s.Hash) }

// NewSource checks the extension and hashes the file contents.
func NewSource(path string) (Source, error) {
	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		return Source{}, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return Source{}, fmt.Errorf("hash %s: %w", path, err)
	}
	return Source{Path: path, Hash: h.Sum(nil), Format: format}, nil
}

type OCRStage struct {
	TextExtractor extract.TextExtractor
	Logger        *slog.Logger
}

func NewOCRStage(tx extract.TextExtractor, logger *slog.Logger) *OCRStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRStage{TextExtractor: tx, Logger: logger}
}

// Run extracts text from src. needsReview is set for images whose OCR confidence is low.
func (p *OCRStage) Run(ctx context.Context, src Source) (extract.TextExtractionResult, bool, error) {
	ctx = ocr.WithContentHash(ctx, src.HashHex())
	res, err := p.TextExtractor.Extract(ctx, src.Path)
	if err != nil {
		return res, false, err
	}

	needsReview := false
	if src.Format == constants.IMAGE {
		if res.Confidence > 0 && res.Confidence < ocr.ImageConfidenceThreshold {
			p.Logger.Warn("Image ocr confidence low; needs review", "path", src.Path, "conf", res.Confidence)
			needsReview = true
		}
	}
	return res, needsReview, nil
}
