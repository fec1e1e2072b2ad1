package parser

import (
	"github.com/google/uuid"

	"github.com/joseph-ayodele/cardscan/internal/common"
)

// Base confidences attached to each extracted candidate.
const (
	DefaultEmailConfidence  = 0.90
	DefaultPhoneConfidence  = 0.85
	DefaultURLConfidence    = 0.80
	DefaultSocialConfidence = 0.75
)

// Category scores used by the aggregator.
const (
	DefaultNameScore         = 0.9
	DefaultPhoneScore        = 0.85
	DefaultEmailScore        = 0.9
	DefaultOrganizationScore = 0.7
	DefaultAddressScore      = 0.0
)

// Phone numbers are valid when their digit count is strictly between these bounds.
const (
	DefaultMinPhoneDigits = 10
	DefaultMaxPhoneDigits = 15
)

// IDNamespace seeds the name-based UUIDs given to extracted items.
var IDNamespace = uuid.MustParse("8f2b7c1e-3d4a-5b6c-9e0f-1a2b3c4d5e6f")

// defaultJobTitleKeywords are matched case-insensitively. Upper-case entries of
// up to four characters are matched as whole words, everything else as a
// substring; "Associate" therefore also fires on firm names such as
// "Smith & Associates".
var defaultJobTitleKeywords = []string{
	"CEO", "CTO", "CFO", "COO", "CMO", "CIO",
	"President", "VP", "Director", "Manager", "Engineer", "Developer",
	"Designer", "Lead", "Head of", "Founder", "Partner", "Consultant",
	"Analyst", "Architect", "Specialist", "Coordinator", "Officer",
	"Executive", "Owner", "Principal", "Associate", "Administrator",
	"Attorney", "Accountant", "Advisor", "Scientist", "Representative",
}

// Config carries the tunable constants of the parser.
type Config struct {
	EmailConfidence  float64
	PhoneConfidence  float64
	URLConfidence    float64
	SocialConfidence float64

	NameScore         float64
	PhoneScore        float64
	EmailScore        float64
	OrganizationScore float64
	AddressScore      float64

	MinPhoneDigits int
	MaxPhoneDigits int

	JobTitleKeywords []string
}

// DefaultConfig returns the stock parser configuration.
func DefaultConfig() Config {
	kw := make([]string, len(defaultJobTitleKeywords))
	copy(kw, defaultJobTitleKeywords)
	return Config{
		EmailConfidence:   DefaultEmailConfidence,
		PhoneConfidence:   DefaultPhoneConfidence,
		URLConfidence:     DefaultURLConfidence,
		SocialConfidence:  DefaultSocialConfidence,
		NameScore:         DefaultNameScore,
		PhoneScore:        DefaultPhoneScore,
		EmailScore:        DefaultEmailScore,
		OrganizationScore: DefaultOrganizationScore,
		AddressScore:      DefaultAddressScore,
		MinPhoneDigits:    DefaultMinPhoneDigits,
		MaxPhoneDigits:    DefaultMaxPhoneDigits,
		JobTitleKeywords:  kw,
	}
}

// ConfigFrom maps the parser section of the application config. Zero values
// fall back to the defaults when the Config is applied.
func ConfigFrom(c common.ParserConfig) Config {
	return Config{
		EmailConfidence:  c.EmailConfidence,
		PhoneConfidence:  c.PhoneConfidence,
		URLConfidence:    c.URLConfidence,
		SocialConfidence: c.SocialConfidence,
		MinPhoneDigits:   c.MinPhoneDigits,
		MaxPhoneDigits:   c.MaxPhoneDigits,
		JobTitleKeywords: c.JobTitleKeywords,
	}
}

// withDefaults fills zero values so a partially populated Config still behaves.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.EmailConfidence <= 0 {
		c.EmailConfidence = d.EmailConfidence
	}
	if c.PhoneConfidence <= 0 {
		c.PhoneConfidence = d.PhoneConfidence
	}
	if c.URLConfidence <= 0 {
		c.URLConfidence = d.URLConfidence
	}
	if c.SocialConfidence <= 0 {
		c.SocialConfidence = d.SocialConfidence
	}
	if c.NameScore <= 0 {
		c.NameScore = d.NameScore
	}
	if c.PhoneScore <= 0 {
		c.PhoneScore = d.PhoneScore
	}
	if c.EmailScore <= 0 {
		c.EmailScore = d.EmailScore
	}
	if c.OrganizationScore <= 0 {
		c.OrganizationScore = d.OrganizationScore
	}
	if c.AddressScore < 0 {
		c.AddressScore = 0
	}
	if c.MinPhoneDigits <= 0 {
		c.MinPhoneDigits = d.MinPhoneDigits
	}
	if c.MaxPhoneDigits <= c.MinPhoneDigits {
		c.MaxPhoneDigits = d.MaxPhoneDigits
	}
	if len(c.JobTitleKeywords) == 0 {
		c.JobTitleKeywords = d.JobTitleKeywords
	}
	for _, f := range []*float64{
		&c.EmailConfidence, &c.PhoneConfidence, &c.URLConfidence, &c.SocialConfidence,
		&c.NameScore, &c.PhoneScore, &c.EmailScore, &c.OrganizationScore, &c.AddressScore,
	} {
		if *f > 1 {
			*f = 1
		}
	}
	return c
}
