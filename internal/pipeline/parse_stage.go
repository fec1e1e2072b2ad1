package processor

import (
	"log/slog"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/extract"
)

type ParseStage struct {
	Parser extract.ContactParser
	Logger *slog.Logger
}

func NewParseStage(p extract.ContactParser, logger *slog.Logger) *ParseStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStage{Parser: p, Logger: logger}
}

// Run parses the extracted text once and builds the scan row for it.
func (p *ParseStage) Run(src Source, res extract.TextExtractionResult, lowConfidence bool) *entity.Scan {
	c := p.Parser.Parse(res.Text)

	needsReview := lowConfidence
	if !c.IsValidForSaving() {
		p.Logger.Warn("contact incomplete; needs review", "path", src.Path,
			"has_name", c.Validation.HasValidName,
			"has_phone", c.Validation.HasValidPhone,
			"has_email", c.Validation.HasValidEmail,
		)
		needsReview = true
	}
	status := constants.ScanStatusParsed
	if needsReview {
		status = constants.ScanStatusNeedsReview
	}

	return &entity.Scan{
		SourcePath:    src.Path,
		ContentHash:   src.Hash,
		Format:        src.Format,
		Method:        res.Method,
		OCRConfidence: res.Confidence,
		Status:        string(status),
		NeedsReview:   needsReview,
		Contact:       c,
	}
}
