package constants

// ScanStatus is the canonical status for rows in scans.
type ScanStatus string

// Stable values (store these exact strings in DB).
const (
	ScanStatusParsed      ScanStatus = "PARSED"       // saved and valid for saving
	ScanStatusNeedsReview ScanStatus = "NEEDS_REVIEW" // saved, but low OCR confidence or not enough data
	ScanStatusFailed      ScanStatus = "FAILED"       // text extraction failed
)
