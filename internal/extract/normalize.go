package extract

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize canonicalizes character width (full-width Latin and digit
// forms become their half-width equivalents) and trims surrounding
// whitespace. It is idempotent.
func Normalize(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

// NormalizeSoft additionally strips all internal spaces, repairing
// OCR-introduced letter spacing such as "K A N A T A".
func NormalizeSoft(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "")
}

// NormalizeAggressive upper-cases and keeps only [A-Z0-9]; date fields
// additionally keep the / separator.
func NormalizeAggressive(s string, isDate bool) string {
	s = strings.ToUpper(Normalize(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '/' && isDate:
			b.WriteRune(c)
		}
	}
	return b.String()
}
