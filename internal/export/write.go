package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// Write encodes contacts to w in one of constants.ExportFormats.
// A single contact is written as a JSON object; several as a JSON array.
func Write(w io.Writer, format string, contacts []entity.ParsedContact) error {
	var b []byte
	var err error
	switch strings.ToLower(format) {
	case "json":
		if len(contacts) == 1 {
			b, err = JSON(contacts[0])
			break
		}
		docs := make([]Document, 0, len(contacts))
		for _, c := range contacts {
			docs = append(docs, NewDocument(c))
		}
		if b, err = json.MarshalIndent(docs, "", "  "); err == nil {
			b = append(b, '\n')
		}
	case "yaml", "yml":
		b, err = YAML(contacts...)
	case "vcard", "vcf":
		var sb strings.Builder
		for _, c := range contacts {
			sb.WriteString(VCard(c))
		}
		b = []byte(sb.String())
	case "csv":
		return CSV(w, contacts)
	case "xlsx":
		b, err = XLSX(contacts)
	default:
		return fmt.Errorf("%w: export format %q (want one of %s)",
			common.ErrInvalidInput, format, strings.Join(constants.ExportFormats, ", "))
	}
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
