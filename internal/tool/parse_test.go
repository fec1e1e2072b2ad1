package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessCard(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name           string
		input          InputParseBusinessCard
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputParseBusinessCard)
	}{
		{
			name:        "empty text returns error",
			input:       InputParseBusinessCard{Text: "  \n "},
			wantErr:     true,
			errContains: "text is required",
		},
		{
			name:        "oversized text returns error",
			input:       InputParseBusinessCard{Text: strings.Repeat("a", maxTextLength+1)},
			wantErr:     true,
			errContains: "at most",
		},
		{
			name: "full card",
			input: InputParseBusinessCard{
				Text: "Marcus Chen\nSenior Software Engineer\nNorthwind Labs\nmarcus.chen@northwind.io\n+1 (415) 555-0134\nlinkedin.com/in/marcuschen",
			},
			validateOutput: func(t *testing.T, output OutputParseBusinessCard) {
				c := output.Contact
				assert.Equal(t, "Marcus", c.GivenName)
				assert.Equal(t, "Chen", c.FamilyName)
				assert.Equal(t, "Northwind Labs", c.OrganizationName)
				require.Len(t, c.Emails, 1)
				require.Len(t, c.Phones, 1)
				require.Len(t, c.Social, 1)
				assert.Equal(t, "marcuschen", c.Social[0].Handle)
				assert.True(t, c.Validation.IsValidForSaving)
				assert.Empty(t, output.VCard)
			},
		},
		{
			name:  "vcard on request",
			input: InputParseBusinessCard{Text: "Jane Doe\njane@acme.com", IncludeVCard: true},
			validateOutput: func(t *testing.T, output OutputParseBusinessCard) {
				assert.True(t, strings.HasPrefix(output.VCard, "BEGIN:VCARD\r\n"))
				assert.Contains(t, output.VCard, "FN:Jane Doe\r\n")
				assert.Contains(t, output.VCard, "EMAIL")
			},
		},
		{
			name:  "name only is not valid for saving",
			input: InputParseBusinessCard{Text: "Acme Corp"},
			validateOutput: func(t *testing.T, output OutputParseBusinessCard) {
				assert.False(t, output.Contact.Validation.HasMinimumData)
				assert.False(t, output.Contact.Validation.IsValidForSaving)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output, err := ParseBusinessCard(ctx, req, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Nil(t, result)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "cardscan-test", Version: "v0"}, nil)
	assert.NotPanics(t, func() { Register(server, nil) })
}
