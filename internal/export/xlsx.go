package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

const xlsxSheet = "Contacts"

// ScanLister is the slice of the scan repository the export service reads.
type ScanLister interface {
	List(ctx context.Context, limit int) ([]entity.Scan, error)
}

// Service produces workbook exports of stored scans.
type Service struct {
	scans  ScanLister
	logger *slog.Logger
}

func NewService(scans ScanLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{scans: scans, logger: logger}
}

// ExportScansXLSX returns an XLSX workbook with the most recent scans (limit <= 0 means all).
func (s *Service) ExportScansXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()
	scans, err := s.scans.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	contacts := make([]entity.ParsedContact, 0, len(scans))
	for _, sc := range scans {
		contacts = append(contacts, sc.Contact)
	}
	b, err := XLSX(contacts)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export.xlsx.ok",
		"rows", len(contacts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

// XLSX writes one row per contact under the CSVHeader columns.
func XLSX(contacts []entity.ParsedContact) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(xlsxSheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range CSVHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(xlsxSheet, cell, h)
	}

	for r, c := range contacts {
		for col, v := range contactRow(c) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			_ = f.SetCellValue(xlsxSheet, cell, SanitizeCell(v))
		}
	}

	_ = f.SetColWidth(xlsxSheet, "A", "B", 16) // names
	_ = f.SetColWidth(xlsxSheet, "C", "D", 28) // org, title
	_ = f.SetColWidth(xlsxSheet, "E", "H", 40) // channels
	_ = f.SetColWidth(xlsxSheet, "I", "J", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
