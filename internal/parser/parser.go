// Package parser turns raw business-card text into a ParsedContact.
//
// Parse is pure and total: it performs no I/O, never panics on any input and
// always returns a complete record. Absence of data is reported through the
// validation flags, not through errors.
package parser

import (
	"strings"
	"time"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// Parser is safe for concurrent use; it holds no mutable state after New.
type Parser struct {
	cfg      Config
	keywords []string // lower-cased job-title keywords, matched as substrings
	acronyms []string // lower-cased short upper-case keywords, matched as whole words
	now      func() time.Time
}

type Option func(*Parser)

func WithConfig(cfg Config) Option {
	return func(p *Parser) {
		p.cfg = cfg.withDefaults()
	}
}

// WithClock overrides the time source stamped into ParsedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{
		cfg: DefaultConfig(),
		now: time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	p.keywords = make([]string, 0, len(p.cfg.JobTitleKeywords))
	for _, kw := range p.cfg.JobTitleKeywords {
		kw = strings.TrimSpace(kw)
		switch {
		case kw == "":
		case isAcronym(kw):
			p.acronyms = append(p.acronyms, strings.ToLower(kw))
		default:
			p.keywords = append(p.keywords, strings.ToLower(kw))
		}
	}
	return p
}

// Config returns the effective configuration.
func (p *Parser) Config() Config { return p.cfg }

var defaultParser = New()

// Parse runs the default parser.
func Parse(raw string) entity.ParsedContact {
	return defaultParser.Parse(raw)
}

// Parse extracts every field independently, validates the candidates,
// aggregates confidence and returns the assembled record.
func (p *Parser) Parse(raw string) entity.ParsedContact {
	text := strings.ReplaceAll(strings.ReplaceAll(raw, "\r\n", "\n"), "\r", "\n")

	emails := p.extractEmails(text)
	phones := p.extractPhones(text)
	urls := p.extractURLs(text)
	social := p.extractSocial(text)
	id := p.extractIdentity(text)
	addresses := []entity.ParsedAddress{}

	hasName := id.GivenName != "" || id.FamilyName != ""
	orgText := id.Organization + id.JobTitle
	scores, flags := Aggregate(p.cfg, hasName, phones, emails, orgText, addresses)

	return entity.ParsedContact{
		GivenName:        id.GivenName,
		FamilyName:       id.FamilyName,
		OrganizationName: id.Organization,
		JobTitle:         id.JobTitle,
		PhoneNumbers:     phones,
		Emails:           emails,
		URLs:             urls,
		Addresses:        addresses,
		SocialProfiles:   social,
		Confidence:       scores,
		Validation:       flags,
		RawText:          raw,
		ParsedAt:         p.now().UTC(),
	}
}
