// Package ocr turns card images (or plain-text transcripts) into normalized text.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
)

type Config struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string

	HeicConverter       string // heif-convert | magick | sips
	EnableTSVConfidence bool

	PSM int // 11 (sparse text) suits cards; 0 = tesseract default
	OEM int // 1 = LSTM; leave 0 to use default

	ArtifactCacheDir string

	Runner Runner // nil -> exec
}

type ExtractionResult struct {
	Text       string
	SourceType string // constants.TEXT | constants.IMAGE
	Method     string // "text" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.ArtifactCacheDir == "" {
		cfg.ArtifactCacheDir = "./tmp"
	}
	r := cfg.Runner
	if r == nil {
		r = execRunner{logger: logger}
	}
	return &Extractor{cfg: cfg, runner: r, logger: logger}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting ocr extraction", "path", path, "ext", ext)
	switch constants.MapExtToFormat(ext) {
	case constants.TEXT:
		res, err := e.extractText(path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		var cleanup func()
		var warns []string
		if constants.IsHEICExt(ext) {
			hashHex, _ := contentHashFromCtx(ctx)
			out, w, c, err := convertHEICtoPNG(ctx, e.runner, e.logger, e.cfg.HeicConverter, path, e.cfg.ArtifactCacheDir, hashHex)
			warns = append(warns, w...)
			if err != nil {
				e.logger.Error("heic conversion failed", "path", path, "error", err)
				return ExtractionResult{SourceType: constants.IMAGE, Warnings: warns}, fmt.Errorf("%w: %v", common.ErrExtraction, err)
			}
			cleanup = c
			path = out
		}
		if cleanup != nil {
			defer cleanup()
		}
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		res.Warnings = append(res.Warnings, warns...)
		if err != nil {
			err = fmt.Errorf("%w: %v", common.ErrExtraction, err)
		}
		return res, err
	default:
		e.logger.Error("unsupported ocr extension", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
}

// extractText reads a transcript that was produced by an OCR step elsewhere.
func (e *Extractor) extractText(path string) (ExtractionResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{SourceType: constants.TEXT}, fmt.Errorf("read text: %w", err)
	}
	txt := Normalize(string(b))
	return ExtractionResult{
		Text:       txt,
		SourceType: constants.TEXT,
		Method:     "text",
		Confidence: 1,
	}, nil
}
