package parser

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// ValidEmail is intentionally loose: OCR noise is left for the user to fix.
func ValidEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// ValidPhone reports whether s has a digit count strictly between
// DefaultMinPhoneDigits and DefaultMaxPhoneDigits.
func ValidPhone(s string) bool {
	return validPhone(s, DefaultMinPhoneDigits, DefaultMaxPhoneDigits)
}

func validPhone(s string, min, max int) bool {
	n := len(digitsOnly(s))
	return n > min && n < max
}

// ValidURL requires a scheme and a host.
func ValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// ValidAddress requires (street and city) or (city and state) or (street and postal code).
func ValidAddress(a entity.ParsedAddress) bool {
	street := strings.TrimSpace(a.Street) != ""
	city := strings.TrimSpace(a.City) != ""
	state := strings.TrimSpace(a.State) != ""
	postal := strings.TrimSpace(a.PostalCode) != ""
	return (street && city) || (city && state) || (street && postal)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
