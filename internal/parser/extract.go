package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/patterns"
)

// itemID derives a stable id from the item kind, its position and raw text.
func itemID(kind string, index int, raw string) uuid.UUID {
	return uuid.NewSHA1(IDNamespace, []byte(fmt.Sprintf("%s:%d:%s", kind, index, raw)))
}

func (p *Parser) extractEmails(text string) []entity.ParsedEmail {
	matches := patterns.Email.FindAll(text)
	out := make([]entity.ParsedEmail, 0, len(matches))
	for i, m := range matches {
		addr := strings.ToLower(m.Text)
		out = append(out, entity.ParsedEmail{
			ID:         itemID("email", i, m.Text),
			Raw:        m.Text,
			Address:    addr,
			Label:      constants.LabelWork,
			Confidence: p.cfg.EmailConfidence,
			IsValid:    ValidEmail(addr),
		})
	}
	return out
}

func (p *Parser) extractPhones(text string) []entity.ParsedPhoneNumber {
	matches := patterns.Phone.FindAll(text)
	out := make([]entity.ParsedPhoneNumber, 0, len(matches))
	for i, m := range matches {
		raw := strings.TrimSpace(m.Text)
		out = append(out, entity.ParsedPhoneNumber{
			ID:         itemID("phone", i, raw),
			Raw:        raw,
			Formatted:  FormatPhone(raw),
			Label:      phoneLabel(lineAround(text, m.Start), m.Start-lineStart(text, m.Start)),
			Confidence: p.cfg.PhoneConfidence,
			IsValid:    validPhone(raw, p.cfg.MinPhoneDigits, p.cfg.MaxPhoneDigits),
		})
	}
	return out
}

func (p *Parser) extractURLs(text string) []entity.ParsedURL {
	matches := patterns.URL.FindAll(text)
	emails := patterns.Email.FindAll(text)
	out := make([]entity.ParsedURL, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(m.Text, "@") || overlapsAny(m, emails) {
			continue
		}
		norm := NormalizeURL(m.Text)
		out = append(out, entity.ParsedURL{
			ID:         itemID("url", len(out), m.Text),
			Raw:        m.Text,
			Normalized: norm,
			Label:      constants.LabelHomepage,
			Confidence: p.cfg.URLConfidence,
			IsValid:    ValidURL(norm),
		})
	}
	return out
}

// overlapsAny reports whether m shares any byte with one of spans.
func overlapsAny(m patterns.Match, spans []patterns.Match) bool {
	for _, s := range spans {
		if m.Start < s.End && s.Start < m.End {
			return true
		}
	}
	return false
}

func (p *Parser) extractSocial(text string) []entity.ParsedSocialProfile {
	var out []entity.ParsedSocialProfile
	for _, svc := range patterns.Services() {
		m, ok := patterns.Social[svc]
		if !ok {
			continue
		}
		for _, match := range m.FindAll(text) {
			handle, ok := match.Group(1)
			if !ok {
				continue
			}
			handle = strings.TrimRight(handle, ".")
			raw := strings.TrimSpace(match.Text)
			out = append(out, entity.ParsedSocialProfile{
				ID:         itemID("social", len(out), string(svc)+":"+raw),
				Service:    string(svc),
				Handle:     handle,
				URL:        constants.ProfileURL(svc, handle),
				Raw:        raw,
				Confidence: p.cfg.SocialConfidence,
				IsValid:    handle != "",
			})
		}
	}
	if out == nil {
		out = []entity.ParsedSocialProfile{}
	}
	return out
}

// FormatPhone groups 10-digit numbers as (AAA) EEE-LLLL and 11-digit numbers
// starting with 1 as +1 (AAA) EEE-LLLL. Anything else is returned unchanged.
func FormatPhone(raw string) string {
	d := digitsOnly(raw)
	switch {
	case len(d) == 10:
		return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
	case len(d) == 11 && d[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", d[1:4], d[4:7], d[7:])
	default:
		return raw
	}
}

// NormalizeURL prefixes https:// when no scheme is present.
func NormalizeURL(raw string) string {
	l := strings.ToLower(raw)
	if strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") {
		return raw
	}
	return "https://" + raw
}

func lineStart(text string, pos int) int {
	return strings.LastIndexByte(text[:pos], '\n') + 1
}

func lineAround(text string, pos int) string {
	start := lineStart(text, pos)
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : pos+end]
}

// phoneLabel infers a label from the words on the phone's line.
// prefixLen is the length of the text preceding the number on that line.
func phoneLabel(line string, prefixLen int) string {
	l := strings.ToLower(line)
	switch {
	case strings.Contains(l, "mobile"), strings.Contains(l, "cell"):
		return constants.LabelMobile
	case strings.Contains(l, "fax"):
		return constants.LabelFax
	case strings.Contains(l, "home"):
		return constants.LabelHome
	}
	if prefixLen > 0 && prefixLen <= len(l) {
		prefix := strings.Trim(strings.TrimSpace(l[:prefixLen]), ":.")
		switch prefix {
		case "m", "c", "mob":
			return constants.LabelMobile
		case "f":
			return constants.LabelFax
		case "h":
			return constants.LabelHome
		}
	}
	return constants.LabelWork
}
