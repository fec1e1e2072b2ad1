package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	SourceType string // "TEXT" | "IMAGE"
	Method     string // "text" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// ContactParser is Stage 2: text -> contact. Implementations never fail.
type ContactParser interface {
	Parse(raw entity.RawScanText) entity.ParsedContact
}
