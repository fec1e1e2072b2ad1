package ingest

import (
	"context"
)

// IngestionResult is the per-file ingest outcome.
type IngestionResult struct {
	SourcePath  string `json:"source_path"`
	ScanID      string `json:"scan_id,omitempty"`
	HashHex     string `json:"content_hash,omitempty"`
	Status      string `json:"status,omitempty"`
	NeedsReview bool   `json:"needs_review"`
	Err         string `json:"error,omitempty"`
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned     uint32 `json:"scanned"`
	Matched     uint32 `json:"matched"`
	Succeeded   uint32 `json:"succeeded"`
	NeedsReview uint32 `json:"needs_review"`
	Failed      uint32 `json:"failed"`
}

// Ingestor is the behavior the service depends on.
type Ingestor interface {
	// IngestPath processes a single card file.
	IngestPath(ctx context.Context, path string, force bool) (IngestionResult, error)
	// IngestDirectory processes all supported files under root.
	IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error)
}
