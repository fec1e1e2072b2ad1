package export

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// YAML renders one or more contacts as a YAML sequence.
func YAML(contacts ...entity.ParsedContact) ([]byte, error) {
	docs := make([]Document, 0, len(contacts))
	for _, c := range contacts {
		docs = append(docs, NewDocument(c))
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	var v any = docs
	if len(docs) == 1 {
		v = docs[0]
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}
