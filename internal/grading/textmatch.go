package grading

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacritics maps Romanian letters to their Latin base. Decomposition
// already covers most of them, but comma-below and cedilla forms of ș/ț
// are encoded inconsistently in authored content, so the table is applied
// after mark stripping as well.
var diacritics = strings.NewReplacer(
	"ă", "a", "Ă", "A",
	"â", "a", "Â", "A",
	"î", "i", "Î", "I",
	"ș", "s", "Ș", "S",
	"ş", "s", "Ş", "S",
	"ț", "t", "Ț", "T",
	"ţ", "t", "Ţ", "T",
)

// NormalizeDiacritics folds s for short-answer comparison: NFD, strip
// combining marks, substitute Romanian letters, lower-case, trim.
func NormalizeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = diacritics.Replace(folded)
	return strings.TrimSpace(strings.ToLower(folded))
}

// EqualsNormalized reports whether a and b are equal after NormalizeDiacritics.
func EqualsNormalized(a, b string) bool {
	return NormalizeDiacritics(a) == NormalizeDiacritics(b)
}
