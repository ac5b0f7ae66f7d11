package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// German characters that plain diacritic stripping would mangle. They are
// transliterated before the unicode folding pass.
var germanReplacer = strings.NewReplacer(
	"ä", "ae", "Ä", "ae",
	"ö", "oe", "Ö", "oe",
	"ü", "ue", "Ü", "ue",
	"ß", "ss",
)

var foldingTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL slug from a listing title: German transliteration,
// diacritic folding, then kebab-casing over the remaining ASCII alphanumerics.
// Same title in, same slug out.
func Slugify(title string) string {
	s := germanReplacer.Replace(strings.TrimSpace(title))

	folded, _, err := transform.String(foldingTransformer, s)
	if err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
