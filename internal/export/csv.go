package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// CSVHeader is the column order shared by CSV and XLSX exports.
var CSVHeader = []string{
	"Given Name",
	"Family Name",
	"Organization",
	"Job Title",
	"Emails",
	"Phones",
	"Websites",
	"Social Profiles",
	"Overall Confidence",
	"Valid For Saving",
}

// SanitizeCell neutralizes spreadsheet formula injection by prefixing a single quote.
func SanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

func joinField(values []string) string {
	return strings.Join(values, "; ")
}

// contactRow flattens a contact into CSVHeader order, unsanitized.
func contactRow(c entity.ParsedContact) []string {
	emails := make([]string, 0, len(c.Emails))
	for _, e := range c.Emails {
		emails = append(emails, e.Address)
	}
	phones := make([]string, 0, len(c.PhoneNumbers))
	for _, p := range c.PhoneNumbers {
		phones = append(phones, p.Formatted)
	}
	urls := make([]string, 0, len(c.URLs))
	for _, u := range c.URLs {
		urls = append(urls, u.Normalized)
	}
	social := make([]string, 0, len(c.SocialProfiles))
	for _, s := range c.SocialProfiles {
		social = append(social, s.URL)
	}
	return []string{
		c.GivenName,
		c.FamilyName,
		c.OrganizationName,
		c.JobTitle,
		joinField(emails),
		joinField(phones),
		joinField(urls),
		joinField(social),
		strconv.FormatFloat(c.Confidence.Overall(), 'f', 2, 64),
		strconv.FormatBool(c.IsValidForSaving()),
	}
}

// CSV writes a header and one sanitized row per contact.
func CSV(w io.Writer, contacts []entity.ParsedContact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range contacts {
		row := contactRow(c)
		for i := range row {
			row[i] = SanitizeCell(row[i])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
