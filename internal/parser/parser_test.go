package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestParser() *Parser {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func TestParseDeterministic(t *testing.T) {
	p := newTestParser()
	inputs := []string{
		"",
		"Jane Doe\nSenior Engineer\nAcme Corp\njane@acme.com\n(555) 123-4567",
		"garbage \x00 ### @@@ 12",
		"linkedin.com/in/jdoe\n@jdoe\nwww.example.org/about",
	}
	for _, in := range inputs {
		assert.Equal(t, p.Parse(in), p.Parse(in))
	}
}

func TestParseTotal(t *testing.T) {
	p := newTestParser()
	inputs := []string{
		"",
		"   \n\t\n  ",
		"\xff\xfe\xfd",
		strings.Repeat("5", 200),
		"@\n.\n(\n)\n+",
		"İstanbul Şirketi\nfax: +90 212 555 1234",
	}
	for _, in := range inputs {
		c := p.Parse(in)
		assert.NotNil(t, c.PhoneNumbers)
		assert.NotNil(t, c.Emails)
		assert.NotNil(t, c.URLs)
		assert.NotNil(t, c.Addresses)
		assert.NotNil(t, c.SocialProfiles)
		overall := c.Confidence.Overall()
		assert.GreaterOrEqual(t, overall, 0.0)
		assert.LessOrEqual(t, overall, 1.0)
	}
}

func TestParseEmpty(t *testing.T) {
	c := newTestParser().Parse("")
	assert.Empty(t, c.GivenName)
	assert.Empty(t, c.FamilyName)
	assert.Empty(t, c.Emails)
	assert.Empty(t, c.PhoneNumbers)
	assert.Equal(t, 0.0, c.Confidence.Overall())
	assert.False(t, c.Validation.HasMinimumData())
	assert.False(t, c.IsValidForSaving())
	assert.Equal(t, fixedNow, c.ParsedAt)
}

func TestParseEmailLowerCased(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\njane.doe@example.com")
	require.Len(t, c.Emails, 1)
	assert.Equal(t, "jane.doe@example.com", c.Emails[0].Address)
	assert.True(t, c.Emails[0].IsValid)
	assert.Equal(t, DefaultEmailConfidence, c.Emails[0].Confidence)

	c = newTestParser().Parse("Jane Doe\nJane.Doe@Example.COM")
	require.Len(t, c.Emails, 1)
	assert.Equal(t, "jane.doe@example.com", c.Emails[0].Address)
	assert.Equal(t, "Jane.Doe@Example.COM", c.Emails[0].Raw)
}

func TestParseEmailDuplicatesPreserved(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\njane@x.com\nJANE@x.com")
	require.Len(t, c.Emails, 2)
	assert.Equal(t, c.Emails[0].Address, c.Emails[1].Address)
	assert.NotEqual(t, c.Emails[0].ID, c.Emails[1].ID)
}

func TestParsePhoneFormatting(t *testing.T) {
	c := newTestParser().Parse("Bob Smith\nOffice 5551234567 ext")
	require.Len(t, c.PhoneNumbers, 1)
	assert.Equal(t, "(555) 123-4567", c.PhoneNumbers[0].Formatted)
	assert.Equal(t, DefaultPhoneConfidence, c.PhoneNumbers[0].Confidence)
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5551234567", "(555) 123-4567"},
		{"555.123.4567", "(555) 123-4567"},
		{"+1 (555) 987-6543", "+1 (555) 987-6543"},
		{"15559876543", "+1 (555) 987-6543"},
		{"+44 20 7946 0958", "+44 20 7946 0958"},
		{"25559876543", "25559876543"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPhone(tt.in), tt.in)
	}
}

func TestPhoneLabels(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\nMobile: 555-111-2222\nFax 555-333-4444\nM: 555-555-6666\n555-777-8888")
	require.Len(t, c.PhoneNumbers, 4)
	assert.Equal(t, constants.LabelMobile, c.PhoneNumbers[0].Label)
	assert.Equal(t, constants.LabelFax, c.PhoneNumbers[1].Label)
	assert.Equal(t, constants.LabelMobile, c.PhoneNumbers[2].Label)
	assert.Equal(t, constants.LabelWork, c.PhoneNumbers[3].Label)
}

func TestParseMalformedPhoneRetained(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\n555-123-4567")
	require.Len(t, c.PhoneNumbers, 1)
	assert.False(t, c.PhoneNumbers[0].IsValid, "10 digits sits on the exclusive lower bound")
	assert.Equal(t, DefaultPhoneScore, c.Confidence.Phone)
	assert.False(t, c.Validation.HasValidPhone)
}

func TestParseNameSplitting(t *testing.T) {
	tests := []struct {
		in     string
		given  string
		family string
	}{
		{"Alice Johnson", "Alice", "Johnson"},
		{"Prince", "Prince", ""},
		{"Mary Ann Elizabeth Smith", "Mary", "Smith"},
		{"\n\n   Bob   Lee  \nAcme", "Bob", "Lee"},
	}
	for _, tt := range tests {
		c := newTestParser().Parse(tt.in)
		assert.Equal(t, tt.given, c.GivenName, tt.in)
		assert.Equal(t, tt.family, c.FamilyName, tt.in)
		assert.Empty(t, c.MiddleName)
	}
}

func TestParseJobTitleAndOrganization(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		title string
		org   string
	}{
		{"title then org", "Jane Doe\nSenior Engineer\nAcme Corp", "Senior Engineer", "Acme Corp"},
		{"org then title", "Jane Doe\nAcme Corp\nProduct Manager", "Product Manager", "Acme Corp"},
		{"case insensitive", "Jane Doe\nchief executive officer\nAcme", "chief executive officer", "Acme"},
		{"no title", "Jane Doe\nAcme Corp\nSomewhere", "", "Acme Corp"},
		{"first keyword line wins", "Jane Doe\nLead Designer\nDirector of Ops\nAcme", "Lead Designer", "Director of Ops"},
		{"name only", "Jane Doe", "", ""},
		{"acronym alone", "Marcus Rodriguez\nCTO\nTechStart Inc", "CTO", "TechStart Inc"},
		{"acronym after punctuation", "Jane Doe\nAcme\nCo-Founder & CEO", "Co-Founder & CEO", "Acme"},
		{"acronym inside word", "Jane Doe\nVictory Factory\nVP, Sales", "VP, Sales", "Victory Factory"},
		{"acronym inside title word", "Jane Doe\nDoctor Who Fan Club", "", "Doctor Who Fan Club"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestParser().Parse(tt.in)
			assert.Equal(t, tt.title, c.JobTitle)
			assert.Equal(t, tt.org, c.OrganizationName)
		})
	}
}

func TestParseURLEmailDisjoint(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		email string
	}{
		{"plain", "jane@example.com", "jane@example.com"},
		{"leading underscore", "_jane@example.com", "_jane@example.com"},
		{"name line and double underscore", "Jane Doe\n__ops@acme.io", "__ops@acme.io"},
		{"percent local part", "Jane Doe\n%ops@acme.io", "%ops@acme.io"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestParser().Parse(tt.text)
			assert.Empty(t, c.URLs)
			require.Len(t, c.Emails, 1)
			assert.Equal(t, tt.email, c.Emails[0].Address)
		})
	}
}

func TestParseURLBesideEmail(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\n_jane@example.com www.example.com")
	require.Len(t, c.Emails, 1)
	require.Len(t, c.URLs, 1)
	assert.Equal(t, "www.example.com", c.URLs[0].Raw)
}

func TestParseURLNormalized(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\nwww.acme.com\nhttp://blog.acme.io/posts")
	require.Len(t, c.URLs, 2)
	assert.Equal(t, "https://www.acme.com", c.URLs[0].Normalized)
	assert.Equal(t, "http://blog.acme.io/posts", c.URLs[1].Normalized)
	for _, u := range c.URLs {
		assert.True(t, u.IsValid)
		assert.Equal(t, DefaultURLConfidence, u.Confidence)
		assert.Equal(t, constants.LabelHomepage, u.Label)
	}
}

func TestParseSocial(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\nlinkedin.com/in/janedoe\nTwitter: @jdoe\nIG: jane.photos")
	require.Len(t, c.SocialProfiles, 3)

	assert.Equal(t, "linkedin", c.SocialProfiles[0].Service)
	assert.Equal(t, "janedoe", c.SocialProfiles[0].Handle)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", c.SocialProfiles[0].URL)

	assert.Equal(t, "twitter", c.SocialProfiles[1].Service)
	assert.Equal(t, "jdoe", c.SocialProfiles[1].Handle)

	assert.Equal(t, "instagram", c.SocialProfiles[2].Service)
	assert.Equal(t, "jane.photos", c.SocialProfiles[2].Handle)
	for _, s := range c.SocialProfiles {
		assert.Equal(t, DefaultSocialConfidence, s.Confidence)
		assert.True(t, s.IsValid)
	}
}

func TestMinimumDataGate(t *testing.T) {
	c := newTestParser().Parse("Jane Doe\njane@example.com")
	assert.True(t, c.Validation.HasMinimumData())
	assert.True(t, c.IsValidForSaving())

	c = newTestParser().Parse("Acme Corp")
	assert.False(t, c.Validation.HasValidPhone)
	assert.False(t, c.Validation.HasValidEmail)
	assert.False(t, c.Validation.HasMinimumData())
	assert.False(t, c.IsValidForSaving())
}

func TestEndToEndCard(t *testing.T) {
	in := `Marcus Rodriguez
CTO
TechStart Inc
m.rodriguez@techstart.io
+1 (555) 987-6543`

	c := newTestParser().Parse(in)
	assert.Equal(t, "Marcus", c.GivenName)
	assert.Equal(t, "Rodriguez", c.FamilyName)
	assert.Equal(t, "CTO", c.JobTitle)
	assert.Equal(t, "TechStart Inc", c.OrganizationName)

	require.Len(t, c.Emails, 1)
	assert.Equal(t, "m.rodriguez@techstart.io", c.Emails[0].Address)
	assert.True(t, c.Emails[0].IsValid)

	require.Len(t, c.PhoneNumbers, 1)
	assert.Equal(t, "+1 (555) 987-6543", c.PhoneNumbers[0].Formatted)
	assert.True(t, c.PhoneNumbers[0].IsValid)

	assert.Empty(t, c.URLs)
	assert.True(t, c.Validation.HasMinimumData())
	assert.True(t, c.IsValidForSaving())
	assert.InDelta(t, (0.9+0.85+0.9+0.7)/4, c.Confidence.Overall(), 1e-9)
	assert.Equal(t, in, c.RawText)
}

func TestWithConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmailConfidence = 0.5
	cfg.MinPhoneDigits = 9
	cfg.JobTitleKeywords = []string{"wizard"}

	p := New(WithConfig(cfg), WithClock(func() time.Time { return fixedNow }))
	c := p.Parse("Jane Doe\nAcme\nChief Wizard\njane@x.io\n555-123-4567")
	require.Len(t, c.Emails, 1)
	assert.Equal(t, 0.5, c.Emails[0].Confidence)
	require.Len(t, c.PhoneNumbers, 1)
	assert.True(t, c.PhoneNumbers[0].IsValid)
	assert.Equal(t, "Chief Wizard", c.JobTitle)
	assert.Equal(t, "Acme", c.OrganizationName)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(common.ParserConfig{
		EmailConfidence:  0.6,
		MinPhoneDigits:   9,
		MaxPhoneDigits:   14,
		JobTitleKeywords: []string{"Wizard", "CWO"},
	})
	p := New(WithConfig(cfg))
	got := p.Config()
	assert.Equal(t, 0.6, got.EmailConfidence)
	assert.Equal(t, DefaultPhoneConfidence, got.PhoneConfidence)
	assert.Equal(t, 9, got.MinPhoneDigits)
	assert.Equal(t, 14, got.MaxPhoneDigits)

	c := p.Parse("Jane Doe\nAcme\nCWO")
	assert.Equal(t, "CWO", c.JobTitle)
	c = p.Parse("Jane Doe\nCwoffee Shop")
	assert.Empty(t, c.JobTitle)
}

func TestPackageParse(t *testing.T) {
	c := Parse("Alice Johnson\nalice@example.com")
	assert.Equal(t, "Alice", c.GivenName)
	assert.False(t, c.ParsedAt.IsZero())
}
