package entity

import (
	"time"

	"github.com/google/uuid"
)

// Scan is one processed card as stored by the repository.
type Scan struct {
	ID            uuid.UUID     `json:"id"`
	SourcePath    string        `json:"source_path"`
	ContentHash   []byte        `json:"content_hash"`
	Format        string        `json:"format"`
	Method        string        `json:"method"`
	OCRConfidence float32       `json:"ocr_confidence"`
	Status        string        `json:"status"`
	NeedsReview   bool          `json:"needs_review"`
	Contact       ParsedContact `json:"contact"`
	CreatedAt     time.Time     `json:"created_at"`
}
