package sanitizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeUnicode converts s to Unicode normalization form C so visually identical
// input compares equal ("e" + combining acute becomes "é").
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// Title converts s to title case using language-neutral casing rules.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}
