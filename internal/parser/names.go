package parser

import (
	"strings"
	"unicode"
)

// identity is the name, title and organization read off the card lines.
type identity struct {
	GivenName    string
	FamilyName   string
	JobTitle     string
	Organization string
}

func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// extractIdentity treats the first line as the name, then makes one pass over
// the remaining lines: the first line holding a job-title keyword is the title,
// the first other line is the organization.
// Middle tokens of the name line are dropped.
func (p *Parser) extractIdentity(text string) identity {
	var id identity
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return id
	}

	tokens := strings.Fields(lines[0])
	switch len(tokens) {
	case 0:
	case 1:
		id.GivenName = tokens[0]
	default:
		id.GivenName = tokens[0]
		id.FamilyName = tokens[len(tokens)-1]
	}

	for _, ln := range lines[1:] {
		if id.JobTitle == "" && p.hasJobTitleKeyword(ln) {
			id.JobTitle = ln
		} else if id.Organization == "" {
			id.Organization = ln
		}
		if id.JobTitle != "" && id.Organization != "" {
			break
		}
	}
	return id
}

// hasJobTitleKeyword matches ordinary keywords anywhere in the line and
// acronyms only as whole words, so "CTO" does not fire inside "Factory".
func (p *Parser) hasJobTitleKeyword(line string) bool {
	l := strings.ToLower(line)
	for _, kw := range p.keywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	if len(p.acronyms) == 0 {
		return false
	}
	words := strings.FieldsFunc(l, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		for _, a := range p.acronyms {
			if w == a {
				return true
			}
		}
	}
	return false
}

// isAcronym reports keywords of at most four characters with no lower-case letters.
func isAcronym(kw string) bool {
	if len([]rune(kw)) > 4 {
		return false
	}
	for _, r := range kw {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
