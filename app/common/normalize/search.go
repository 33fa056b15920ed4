// Package normalize holds the pure derivations the index stores next to the raw catalog
// fields: the folded search key of a title and the compact systems encoding.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters without a canonical decomposition that still need folding to plain latin.
var transliterations = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'ł': "l",
	'đ': "d",
	'ð': "d",
	'þ': "th",
	'ı': "i",
}

// Search maps a display title to the key stored in products.search_title.
//
// The folding is: NFKD decomposition with combining marks removed, lower case,
// transliteration of the letters in transliterations, and finally every rune that is
// neither a letter nor a digit is dropped (whitespace included). Queries must be folded
// with the same function, so substring matching works on the folded form:
//
//	Search("The Witcher® 3: Wild Hunt") == "thewitcher3wildhunt"
func Search(title string) string {
	if title == "" {
		return ""
	}

	// transform.Chain keeps state, so it is built per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if repl, ok := transliterations[r]; ok {
			b.WriteString(repl)
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
