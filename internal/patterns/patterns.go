// Package patterns holds the compiled matchers used to find contact fields in card text.
// Matchers are stateless and safe for concurrent use.
package patterns

import (
	"regexp"

	"github.com/joseph-ayodele/cardscan/constants"
)

// Match is one occurrence of a pattern in the scanned text.
type Match struct {
	Text   string
	Start  int
	End    int
	Groups []string // capture groups; "" when the group did not participate

	present []bool
}

// Group returns capture group i (1-based) and whether it participated in the match.
func (m Match) Group(i int) (string, bool) {
	if i < 1 || i > len(m.Groups) {
		return "", false
	}
	return m.Groups[i-1], m.present[i-1]
}

// Matcher wraps one compiled pattern.
type Matcher struct {
	name string
	re   *regexp.Regexp
}

func newMatcher(name, expr string) *Matcher {
	return &Matcher{name: name, re: regexp.MustCompile(expr)}
}

func (m *Matcher) Name() string { return m.name }

// FindAll returns every non-overlapping match in text, in source order.
func (m *Matcher) FindAll(text string) []Match {
	idx := m.re.FindAllStringSubmatchIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Match, 0, len(idx))
	for _, loc := range idx {
		groups := make([]string, 0, len(loc)/2-1)
		present := make([]bool, 0, len(loc)/2-1)
		for g := 2; g+1 < len(loc); g += 2 {
			if loc[g] < 0 {
				groups = append(groups, "")
				present = append(present, false)
				continue
			}
			groups = append(groups, text[loc[g]:loc[g+1]])
			present = append(present, true)
		}
		out = append(out, Match{
			Text:    text[loc[0]:loc[1]],
			Start:   loc[0],
			End:     loc[1],
			Groups:  groups,
			present: present,
		})
	}
	return out
}

// === EMAIL ===

// Email matches addresses in the simplified RFC 5322 form local@domain.tld.
var Email = newMatcher("email", `(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)

// === PHONE ===

// Phone matches North American style numbers with an optional country code,
// optional parentheses around the area code, and '.', '-' or space separators.
// Separators never cross a line break.
var Phone = newMatcher("phone", `(?:\+?\d{1,3}[-. \t]?)?\(?\d{3}\)?[-. \t]?\d{3}[-. \t]?\d{4}`)

// === URL ===

// URL matches web addresses with an optional scheme and "www." prefix.
// '@' is admitted in the host class so an e-mail address is consumed whole
// and can be rejected by the caller instead of yielding its domain.
var URL = newMatcher("url", `(?i)\b(?:https?://)?(?:www\.)?[a-z0-9][a-z0-9\-._%+@]*\.[a-z]{2,}(?:/\S*)?`)

// === SOCIAL ===

// Social matchers capture the profile handle in group 1, from either the
// profile url form or the "service: handle" shorthand.
var Social = map[constants.SocialService]*Matcher{
	constants.LinkedIn: newMatcher("linkedin",
		`(?i)(?:linkedin\.com/in/|linkedin:[ \t]*)([a-z0-9_\-]+)`),
	constants.Twitter: newMatcher("twitter",
		`(?im)(?:\b(?:twitter|x)\.com/|twitter:[ \t]*|(?:^|[ \t])@)([a-z0-9_]{1,15})`),
	constants.Instagram: newMatcher("instagram",
		`(?i)(?:instagram\.com/|instagram:[ \t]*|\big:[ \t]*)([a-z0-9_.]+)`),
	constants.Facebook: newMatcher("facebook",
		`(?i)(?:facebook\.com/|fb\.com/|facebook:[ \t]*)([a-z0-9.]+)`),
}

// Services returns the social services in fixed extraction order.
func Services() []constants.SocialService {
	return constants.SocialServices()
}
