package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

func TestAggregateEmailOnly(t *testing.T) {
	emails := []entity.ParsedEmail{{Address: "jane@example.com", IsValid: true}}
	scores, flags := Aggregate(DefaultConfig(), false, nil, emails, "", nil)

	assert.Equal(t, entity.ConfidenceScores{Email: 0.9}, scores)
	assert.InDelta(t, 0.9, scores.Overall(), 1e-9)
	assert.True(t, flags.HasValidEmail)
	assert.False(t, flags.HasMinimumData())
}

func TestAggregateCategories(t *testing.T) {
	tests := []struct {
		name      string
		hasName   bool
		phones    []entity.ParsedPhoneNumber
		emails    []entity.ParsedEmail
		org       string
		wantScore entity.ConfidenceScores
		wantFlags entity.ValidationFlags
	}{
		{
			name:      "nothing",
			wantScore: entity.ConfidenceScores{},
		},
		{
			name:      "organization only",
			org:       "Acme Corp",
			wantScore: entity.ConfidenceScores{Organization: 0.7},
		},
		{
			name:      "invalid phone still scores",
			hasName:   true,
			phones:    []entity.ParsedPhoneNumber{{Raw: "555-1234567", IsValid: false}},
			wantScore: entity.ConfidenceScores{Name: 0.9, Phone: 0.85},
			wantFlags: entity.ValidationFlags{HasValidName: true},
		},
		{
			name:    "all categories",
			hasName: true,
			phones:  []entity.ParsedPhoneNumber{{IsValid: false}, {IsValid: true}},
			emails:  []entity.ParsedEmail{{IsValid: true}},
			org:     "CTO",
			wantScore: entity.ConfidenceScores{
				Name: 0.9, Phone: 0.85, Email: 0.9, Organization: 0.7,
			},
			wantFlags: entity.ValidationFlags{HasValidName: true, HasValidPhone: true, HasValidEmail: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, flags := Aggregate(DefaultConfig(), tt.hasName, tt.phones, tt.emails, tt.org, nil)
			assert.Equal(t, tt.wantScore, scores)
			assert.Equal(t, tt.wantFlags, flags)
			assert.False(t, flags.HasPotentialDuplicates)
		})
	}
}

func TestAggregateAddressFlag(t *testing.T) {
	addrs := []entity.ParsedAddress{
		NewAddress("Main St", "", "", "", ""),
		NewAddress("1 Main St", "Springfield", "", "", ""),
	}
	scores, flags := Aggregate(DefaultConfig(), false, nil, nil, "", addrs)
	assert.Equal(t, 0.0, scores.Address)
	assert.True(t, flags.HasValidAddress)
}

func TestOverall(t *testing.T) {
	assert.Equal(t, 0.0, entity.ConfidenceScores{}.Overall())
	assert.InDelta(t, 0.875, entity.ConfidenceScores{Name: 0.9, Phone: 0.85}.Overall(), 1e-9)
}

func TestIsValidForSaving(t *testing.T) {
	tests := []struct {
		flags entity.ValidationFlags
		want  bool
	}{
		{entity.ValidationFlags{HasValidName: true, HasValidEmail: true}, true},
		{entity.ValidationFlags{HasValidName: true, HasValidPhone: true}, true},
		{entity.ValidationFlags{HasValidName: true}, false},
		{entity.ValidationFlags{HasValidPhone: true, HasValidEmail: true}, false},
		{entity.ValidationFlags{}, false},
	}
	for _, tt := range tests {
		c := entity.ParsedContact{Validation: tt.flags}
		assert.Equal(t, tt.want, c.IsValidForSaving(), "%+v", tt.flags)
		assert.Equal(t, tt.want, tt.flags.HasMinimumData(), "%+v", tt.flags)
	}
}
