package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

func confidenceProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0, "maximum": 1}
}

// DocumentSchema is the JSON schema every exported Document satisfies.
func DocumentSchema() map[string]any {
	item := func(required []string, props map[string]any) map[string]any {
		return map[string]any{
			"type":       "object",
			"required":   required,
			"properties": props,
		}
	}
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"required": []string{
			"phones", "emails", "urls", "social_profiles", "addresses",
			"confidence", "validation", "raw_text",
		},
		"properties": map[string]any{
			"given_name":        map[string]any{"type": "string"},
			"family_name":       map[string]any{"type": "string"},
			"organization_name": map[string]any{"type": "string"},
			"job_title":         map[string]any{"type": "string"},
			"phones": map[string]any{"type": "array", "items": item(
				[]string{"raw", "formatted", "label", "confidence", "valid"},
				map[string]any{"raw": map[string]any{"type": "string"}, "confidence": confidenceProp(), "valid": map[string]any{"type": "boolean"}},
			)},
			"emails": map[string]any{"type": "array", "items": item(
				[]string{"address", "label", "confidence", "valid"},
				map[string]any{"address": map[string]any{"type": "string", "pattern": "^[^A-Z]*$"}, "confidence": confidenceProp()},
			)},
			"urls": map[string]any{"type": "array", "items": item(
				[]string{"url", "label", "confidence", "valid"},
				map[string]any{"url": map[string]any{"type": "string", "pattern": "^https?://"}, "confidence": confidenceProp()},
			)},
			"social_profiles": map[string]any{"type": "array", "items": item(
				[]string{"service", "handle", "url", "confidence", "valid"},
				map[string]any{
					"service":    map[string]any{"enum": constants.AsStringSlice()},
					"confidence": confidenceProp(),
				},
			)},
			"addresses": map[string]any{"type": "array"},
			"confidence": item(
				[]string{"name", "phone", "email", "address", "organization", "overall"},
				map[string]any{
					"name": confidenceProp(), "phone": confidenceProp(), "email": confidenceProp(),
					"address": confidenceProp(), "organization": confidenceProp(), "overall": confidenceProp(),
				},
			),
			"validation": item(
				[]string{"has_minimum_data", "is_valid_for_saving"},
				map[string]any{
					"has_minimum_data":    map[string]any{"type": "boolean"},
					"is_valid_for_saving": map[string]any{"type": "boolean"},
				},
			),
			"raw_text":  map[string]any{"type": "string"},
			"parsed_at": map[string]any{"type": "string"},
		},
	}
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(DocumentSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("document.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("document.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateDocument checks raw JSON against DocumentSchema.
func ValidateDocument(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// JSON renders an indented, schema-checked document.
func JSON(c entity.ParsedContact) ([]byte, error) {
	b, err := json.MarshalIndent(NewDocument(c), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if err := ValidateDocument(b); err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
