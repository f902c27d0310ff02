package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// connectives stay lowercase wherever they appear in a name.
var connectives = map[string]struct{}{
	"da":  {},
	"de":  {},
	"do":  {},
	"das": {},
	"dos": {},
	"e":   {},
}

// FormatName applies Brazilian name casing: every word is lowercased and
// gets an uppercase first letter, except the connectives da, de, do, das,
// dos and e, which stay lowercase even as the first word. Whitespace runs
// collapse to single spaces. FormatName is idempotent.
func FormatName(text string) string {
	// Casers keep state and are not safe for concurrent use.
	lower := cases.Lower(language.BrazilianPortuguese)

	words := strings.Fields(lower.String(strings.TrimSpace(text)))
	if len(words) == 0 {
		return ""
	}

	for i, w := range words {
		if _, ok := connectives[w]; ok {
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// capitalize title-cases the first rune of an already lowercased word.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToTitle(r)) + w[size:]
}
