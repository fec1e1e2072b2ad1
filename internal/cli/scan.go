package cli

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/export"
)

func (a *app) scanCmd() *cobra.Command {
	var format, out string
	var force bool
	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "OCR a card image (or read a .txt transcript) and parse it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			proc, _, closeDB, err := a.newProcessor(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			scan, err := proc.Process(ctx, args[0], force)
			if err != nil {
				return err
			}
			if scan.NeedsReview {
				a.logger.Warn("scan needs review", "path", scan.SourcePath, "ocr_confidence", scan.OCRConfidence)
			}

			w, closeOut, err := openOutput(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := export.Write(w, format, []entity.ParsedContact{scan.Contact}); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml, vcard, csv, xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&force, "force", false, "reprocess even if the same content was stored before")
	return cmd
}
