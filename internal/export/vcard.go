package export

import (
	"strings"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// EscapeVCard escapes a property value per RFC 6350 section 3.4.
func EscapeVCard(s string) string {
	return vcardEscaper.Replace(s)
}

func vcardTelType(label string) string {
	switch label {
	case constants.LabelMobile:
		return "cell"
	case constants.LabelFax:
		return "fax"
	case constants.LabelHome:
		return "home"
	default:
		return "work,voice"
	}
}

// VCard renders a vCard 4.0 with CRLF line endings.
func VCard(c entity.ParsedContact) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	fn := c.FullName()
	if fn == "" {
		fn = c.OrganizationName
	}
	if fn == "" && len(c.Emails) > 0 {
		fn = c.Emails[0].Address
	}

	line("BEGIN:VCARD")
	line("VERSION:4.0")
	line("FN:" + EscapeVCard(fn))
	if c.HasName() {
		line("N:" + strings.Join([]string{
			EscapeVCard(c.FamilyName),
			EscapeVCard(c.GivenName),
			EscapeVCard(c.MiddleName),
			EscapeVCard(c.NamePrefix),
			EscapeVCard(c.NameSuffix),
		}, ";"))
	}
	if c.Nickname != "" {
		line("NICKNAME:" + EscapeVCard(c.Nickname))
	}
	if c.OrganizationName != "" || c.Department != "" {
		org := EscapeVCard(c.OrganizationName)
		if c.Department != "" {
			org += ";" + EscapeVCard(c.Department)
		}
		line("ORG:" + org)
	}
	if c.JobTitle != "" {
		line("TITLE:" + EscapeVCard(c.JobTitle))
	}
	for _, p := range c.PhoneNumbers {
		line("TEL;TYPE=" + vcardTelType(p.Label) + ":" + EscapeVCard(p.Formatted))
	}
	for _, e := range c.Emails {
		line("EMAIL;TYPE=" + e.Label + ":" + EscapeVCard(e.Address))
	}
	for _, u := range c.URLs {
		line("URL:" + EscapeVCard(u.Normalized))
	}
	for _, a := range c.Addresses {
		line("ADR;TYPE=" + a.Label + ":" + strings.Join([]string{
			"", "",
			EscapeVCard(a.Street),
			EscapeVCard(a.City),
			EscapeVCard(a.State),
			EscapeVCard(a.PostalCode),
			EscapeVCard(a.Country),
		}, ";"))
	}
	for _, s := range c.SocialProfiles {
		line("X-SOCIALPROFILE;TYPE=" + s.Service + ":" + EscapeVCard(s.URL))
	}
	if c.Note != "" {
		line("NOTE:" + EscapeVCard(c.Note))
	}
	line("END:VCARD")
	return b.String()
}
