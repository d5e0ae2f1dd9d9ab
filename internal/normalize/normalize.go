// Package normalize tokenizes and normalizes free-text travel queries and
// POR textual fields: lower-casing, diacritics folding and punctuation
// stripping, per spec §3 ("Token / WordList").
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks (Mn) after NFD decomposition, e.g.
// "Río" -> "Rio", turning accented input into plain ASCII-ish text before
// tokenization.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics applies Unicode NFD decomposition, drops combining marks,
// and recomposes, so "café" normalizes to "cafe".
func FoldDiacritics(s string) string {
	out, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		return s
	}
	return out
}

// isWordRune reports whether r should be kept as part of a token; everything
// else (punctuation, symbols) is treated as a separator.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits s into lower-cased, diacritics-folded, punctuation-free
// whitespace tokens, preserving order. This is the WordList_T of spec §3.
func Tokenize(s string) []string {
	s = FoldDiacritics(strings.ToLower(s))

	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// Join renders a token group back into its canonical textual form: tokens
// joined by a single space. Used for StringSet/Result query strings.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
