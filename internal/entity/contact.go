package entity

import (
	"time"

	"github.com/google/uuid"
)

// RawScanText is the unstructured OCR output of a single card.
type RawScanText = string

// ParsedContact is the immutable result of parsing one card's text.
type ParsedContact struct {
	NamePrefix string `json:"name_prefix,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	NameSuffix string `json:"name_suffix,omitempty"`
	Nickname   string `json:"nickname,omitempty"`

	OrganizationName string `json:"organization_name,omitempty"`
	JobTitle         string `json:"job_title,omitempty"`
	Department       string `json:"department,omitempty"`

	PhoneNumbers   []ParsedPhoneNumber   `json:"phone_numbers"`
	Emails         []ParsedEmail         `json:"emails"`
	URLs           []ParsedURL           `json:"urls"`
	Addresses      []ParsedAddress       `json:"addresses"`
	SocialProfiles []ParsedSocialProfile `json:"social_profiles"`
	Note           string                `json:"note,omitempty"`

	Confidence ConfidenceScores `json:"confidence"`
	Validation ValidationFlags  `json:"validation"`

	RawText  string    `json:"raw_text"`
	ParsedAt time.Time `json:"parsed_at"`
}

// HasName reports whether a given or family name was found.
func (c ParsedContact) HasName() bool {
	return c.GivenName != "" || c.FamilyName != ""
}

// FullName joins the name parts that are set.
func (c ParsedContact) FullName() string {
	out := ""
	for _, p := range []string{c.NamePrefix, c.GivenName, c.MiddleName, c.FamilyName, c.NameSuffix} {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

// IsValidForSaving gates persistence of a contact.
// The second clause is implied by HasMinimumData; it is kept so the rule reads as documented.
func (c ParsedContact) IsValidForSaving() bool {
	v := c.Validation
	return v.HasMinimumData() && (v.HasValidName || v.HasValidPhone || v.HasValidEmail)
}

// ConfidenceScores holds per-category confidence in [0,1].
type ConfidenceScores struct {
	Name         float64 `json:"name"`
	Phone        float64 `json:"phone"`
	Email        float64 `json:"email"`
	Address      float64 `json:"address"`
	Organization float64 `json:"organization"`
}

// Overall is the mean of the non-zero category scores, 0 when every category is 0.
func (s ConfidenceScores) Overall() float64 {
	var sum float64
	var n int
	for _, v := range []float64{s.Name, s.Phone, s.Email, s.Address, s.Organization} {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ValidationFlags summarizes which categories produced valid data.
type ValidationFlags struct {
	HasValidName           bool `json:"has_valid_name"`
	HasValidPhone          bool `json:"has_valid_phone"`
	HasValidEmail          bool `json:"has_valid_email"`
	HasValidAddress        bool `json:"has_valid_address"`
	HasPotentialDuplicates bool `json:"has_potential_duplicates"`
}

// HasMinimumData requires a name plus at least one way to reach the person.
func (f ValidationFlags) HasMinimumData() bool {
	return f.HasValidName && (f.HasValidPhone || f.HasValidEmail)
}

type ParsedPhoneNumber struct {
	ID         uuid.UUID `json:"id"`
	Raw        string    `json:"raw"`
	Formatted  string    `json:"formatted"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	IsValid    bool      `json:"is_valid"`
}

type ParsedEmail struct {
	ID         uuid.UUID `json:"id"`
	Raw        string    `json:"raw"`
	Address    string    `json:"address"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	IsValid    bool      `json:"is_valid"`
}

type ParsedURL struct {
	ID         uuid.UUID `json:"id"`
	Raw        string    `json:"raw"`
	Normalized string    `json:"normalized"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	IsValid    bool      `json:"is_valid"`
}

type ParsedSocialProfile struct {
	ID         uuid.UUID `json:"id"`
	Service    string    `json:"service"`
	Handle     string    `json:"handle"`
	URL        string    `json:"url"`
	Raw        string    `json:"raw"`
	Confidence float64   `json:"confidence"`
	IsValid    bool      `json:"is_valid"`
}

type ParsedAddress struct {
	ID         uuid.UUID `json:"id"`
	Raw        string    `json:"raw"`
	Street     string    `json:"street,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Country    string    `json:"country,omitempty"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	IsValid    bool      `json:"is_valid"`
}
