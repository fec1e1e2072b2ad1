package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/export"
)

func (a *app) parseCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse recognized card text from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if len(args) == 1 && args[0] != "-" {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			c := a.newParser().Parse(string(raw))
			a.logger.Debug("parsed card",
				"name", c.FullName(),
				"overall", c.Confidence.Overall(),
				"valid_for_saving", c.IsValidForSaving(),
			)

			w, closeOut, err := openOutput(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := export.Write(w, format, []entity.ParsedContact{c}); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml, vcard, csv, xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
