package export

import (
	"time"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// Document is the serialized shape of a parsed contact.
// Derived values (overall confidence, gates) are written out explicitly.
type Document struct {
	GivenName        string `json:"given_name,omitempty" yaml:"given_name,omitempty"`
	FamilyName       string `json:"family_name,omitempty" yaml:"family_name,omitempty"`
	FullName         string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	OrganizationName string `json:"organization_name,omitempty" yaml:"organization_name,omitempty"`
	JobTitle         string `json:"job_title,omitempty" yaml:"job_title,omitempty"`
	Department       string `json:"department,omitempty" yaml:"department,omitempty"`

	Phones    []Phone   `json:"phones" yaml:"phones"`
	Emails    []Email   `json:"emails" yaml:"emails"`
	URLs      []URL     `json:"urls" yaml:"urls"`
	Social    []Social  `json:"social_profiles" yaml:"social_profiles"`
	Addresses []Address `json:"addresses" yaml:"addresses"`
	Note      string    `json:"note,omitempty" yaml:"note,omitempty"`

	Confidence Confidence `json:"confidence" yaml:"confidence"`
	Validation Validation `json:"validation" yaml:"validation"`

	RawText  string `json:"raw_text" yaml:"raw_text"`
	ParsedAt string `json:"parsed_at" yaml:"parsed_at"`
}

type Phone struct {
	Raw        string  `json:"raw" yaml:"raw"`
	Formatted  string  `json:"formatted" yaml:"formatted"`
	Label      string  `json:"label" yaml:"label"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Valid      bool    `json:"valid" yaml:"valid"`
}

type Email struct {
	Address    string  `json:"address" yaml:"address"`
	Label      string  `json:"label" yaml:"label"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Valid      bool    `json:"valid" yaml:"valid"`
}

type URL struct {
	URL        string  `json:"url" yaml:"url"`
	Label      string  `json:"label" yaml:"label"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Valid      bool    `json:"valid" yaml:"valid"`
}

type Social struct {
	Service    string  `json:"service" yaml:"service"`
	Handle     string  `json:"handle" yaml:"handle"`
	URL        string  `json:"url" yaml:"url"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Valid      bool    `json:"valid" yaml:"valid"`
}

type Address struct {
	Street     string `json:"street,omitempty" yaml:"street,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
	Label      string `json:"label" yaml:"label"`
	Valid      bool   `json:"valid" yaml:"valid"`
}

type Confidence struct {
	Name         float64 `json:"name" yaml:"name"`
	Phone        float64 `json:"phone" yaml:"phone"`
	Email        float64 `json:"email" yaml:"email"`
	Address      float64 `json:"address" yaml:"address"`
	Organization float64 `json:"organization" yaml:"organization"`
	Overall      float64 `json:"overall" yaml:"overall"`
}

type Validation struct {
	HasValidName           bool `json:"has_valid_name" yaml:"has_valid_name"`
	HasValidPhone          bool `json:"has_valid_phone" yaml:"has_valid_phone"`
	HasValidEmail          bool `json:"has_valid_email" yaml:"has_valid_email"`
	HasValidAddress        bool `json:"has_valid_address" yaml:"has_valid_address"`
	HasPotentialDuplicates bool `json:"has_potential_duplicates" yaml:"has_potential_duplicates"`
	HasMinimumData         bool `json:"has_minimum_data" yaml:"has_minimum_data"`
	IsValidForSaving       bool `json:"is_valid_for_saving" yaml:"is_valid_for_saving"`
}

// NewDocument flattens a contact into its serialized form.
func NewDocument(c entity.ParsedContact) Document {
	d := Document{
		GivenName:        c.GivenName,
		FamilyName:       c.FamilyName,
		FullName:         c.FullName(),
		OrganizationName: c.OrganizationName,
		JobTitle:         c.JobTitle,
		Department:       c.Department,
		Phones:           make([]Phone, 0, len(c.PhoneNumbers)),
		Emails:           make([]Email, 0, len(c.Emails)),
		URLs:             make([]URL, 0, len(c.URLs)),
		Social:           make([]Social, 0, len(c.SocialProfiles)),
		Addresses:        make([]Address, 0, len(c.Addresses)),
		Note:             c.Note,
		Confidence: Confidence{
			Name:         c.Confidence.Name,
			Phone:        c.Confidence.Phone,
			Email:        c.Confidence.Email,
			Address:      c.Confidence.Address,
			Organization: c.Confidence.Organization,
			Overall:      c.Confidence.Overall(),
		},
		Validation: Validation{
			HasValidName:           c.Validation.HasValidName,
			HasValidPhone:          c.Validation.HasValidPhone,
			HasValidEmail:          c.Validation.HasValidEmail,
			HasValidAddress:        c.Validation.HasValidAddress,
			HasPotentialDuplicates: c.Validation.HasPotentialDuplicates,
			HasMinimumData:         c.Validation.HasMinimumData(),
			IsValidForSaving:       c.IsValidForSaving(),
		},
		RawText: c.RawText,
	}
	if !c.ParsedAt.IsZero() {
		d.ParsedAt = c.ParsedAt.UTC().Format(time.RFC3339)
	}
	for _, p := range c.PhoneNumbers {
		d.Phones = append(d.Phones, Phone{Raw: p.Raw, Formatted: p.Formatted, Label: p.Label, Confidence: p.Confidence, Valid: p.IsValid})
	}
	for _, e := range c.Emails {
		d.Emails = append(d.Emails, Email{Address: e.Address, Label: e.Label, Confidence: e.Confidence, Valid: e.IsValid})
	}
	for _, u := range c.URLs {
		d.URLs = append(d.URLs, URL{URL: u.Normalized, Label: u.Label, Confidence: u.Confidence, Valid: u.IsValid})
	}
	for _, s := range c.SocialProfiles {
		d.Social = append(d.Social, Social{Service: s.Service, Handle: s.Handle, URL: s.URL, Confidence: s.Confidence, Valid: s.IsValid})
	}
	for _, a := range c.Addresses {
		d.Addresses = append(d.Addresses, Address{
			Street: a.Street, City: a.City, State: a.State, PostalCode: a.PostalCode,
			Country: a.Country, Label: a.Label, Valid: a.IsValid,
		})
	}
	return d
}
