// Package tool exposes the card parser as MCP tools.
package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/joseph-ayodele/cardscan/internal/export"
	"github.com/joseph-ayodele/cardscan/internal/extract"
	"github.com/joseph-ayodele/cardscan/internal/parser"
)

const maxTextLength = 64 << 10

// MetadataParseBusinessCard describes the parse_business_card tool.
var MetadataParseBusinessCard = &mcp.Tool{
	Name: "parse_business_card",
	Description: "Parse the OCR text of a business card into a structured contact. " +
		"Returns name, organization, job title, phone numbers, emails, URLs and social profiles, " +
		"each with a confidence score, plus validation flags. A contact is valid for saving " +
		"when it has a name and at least one phone number or email.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Raw text recognized from the card, one printed line per line",
			},
			"include_vcard": map[string]interface{}{
				"type":        "boolean",
				"description": "Also return the contact as a vCard 4.0 string",
			},
		},
	},
}

// InputParseBusinessCard is the input for the ParseBusinessCard tool.
type InputParseBusinessCard struct {
	Text         string `json:"text"`
	IncludeVCard bool   `json:"include_vcard"`
}

// OutputParseBusinessCard is the output for the ParseBusinessCard tool.
type OutputParseBusinessCard struct {
	Contact export.Document `json:"contact"`
	// VCard is set only when requested.
	VCard string `json:"vcard,omitempty"`
}

// NewParseBusinessCard returns a tool handler backed by p.
func NewParseBusinessCard(p extract.ContactParser) mcp.ToolHandlerFor[InputParseBusinessCard, OutputParseBusinessCard] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InputParseBusinessCard) (*mcp.CallToolResult, OutputParseBusinessCard, error) {
		if strings.TrimSpace(input.Text) == "" {
			return nil, OutputParseBusinessCard{}, fmt.Errorf("text is required")
		}
		if len(input.Text) > maxTextLength {
			return nil, OutputParseBusinessCard{}, fmt.Errorf("text must be at most %d bytes", maxTextLength)
		}
		c := p.Parse(input.Text)
		out := OutputParseBusinessCard{Contact: export.NewDocument(c)}
		if input.IncludeVCard {
			out.VCard = export.VCard(c)
		}
		return nil, out, nil
	}
}

// ParseBusinessCard parses with the default parser configuration.
var ParseBusinessCard = NewParseBusinessCard(parser.New())

// Register adds every card tool to server.
func Register(server *mcp.Server, p extract.ContactParser) {
	mcp.AddTool(server, MetadataParseBusinessCard, NewParseBusinessCard(p))
}
