package rowfilter

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer folds text for comparison under a locale's lower-casing rules.
type Normalizer struct {
	tag language.Tag
}

// NewNormalizer returns a Normalizer for the given locale.
func NewNormalizer(tag language.Tag) Normalizer {
	return Normalizer{tag: tag}
}

// ParseNormalizer resolves a BCP 47 locale name. Unknown or empty names fall
// back to the root locale.
func ParseNormalizer(locale string) Normalizer {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return NewNormalizer(language.Und)
	}
	return NewNormalizer(tag)
}

// DefaultNormalizer lower-cases with locale-independent rules.
var DefaultNormalizer = NewNormalizer(language.Und)

// Text maps absent or empty values to "" and lower-cases everything else.
func (n Normalizer) Text(t Text) string {
	s, ok := t.Get()
	if !ok || s == "" {
		return ""
	}
	// Casers carry state, so one is built per call.
	return cases.Lower(n.tag).String(s)
}

// Query trims surrounding whitespace from raw input and lower-cases it. A
// byte order mark counts as whitespace, as it does for browser inputs.
func (n Normalizer) Query(raw string) string {
	return n.Text(Some(strings.TrimFunc(raw, isQuerySpace)))
}

func isQuerySpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Matches reports whether q occurs in any of the row's fields. q must already
// be normalized. The empty query matches every row.
func (n Normalizer) Matches(row Row, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range row.fields() {
		if strings.Contains(n.Text(field), q) {
			return true
		}
	}
	return false
}

// Normalize is DefaultNormalizer.Text.
func Normalize(t Text) string {
	return DefaultNormalizer.Text(t)
}

// NormalizeQuery is DefaultNormalizer.Query.
func NormalizeQuery(raw string) string {
	return DefaultNormalizer.Query(raw)
}

// Matches is DefaultNormalizer.Matches.
func Matches(row Row, q string) bool {
	return DefaultNormalizer.Matches(row, q)
}
