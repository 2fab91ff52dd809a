package site

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for turning a display name into a route key.
	- Deterministic: the same name always gives the same slug, regardless of
	  what the caller sent as slug.
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
	spaces    = regexp.MustCompile(`[\s_]+`)
)

// MakeSlug lower-cases, strips accents and hyphenates.
// Example: "Guitarra Eléctrica Ñandú" -> "guitarra-electrica-nandu"
func MakeSlug(name string) string {
	base := stripAccents(strings.ToLower(strings.TrimSpace(name)))
	base = spaces.ReplaceAllString(base, "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "item"
	}
	return base
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
