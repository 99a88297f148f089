package validator

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/fieldcheck/pkg/cache"
)

// IsEmpty reports whether s has zero length. Whitespace is content.
func IsEmpty(s string) bool {
	return s == ""
}

// Length reports whether the rune count of s lies within [min, max].
// A negative max means no upper bound.
func Length(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	if n < min {
		return false
	}
	return max < 0 || n <= max
}

// IsIn reports whether s equals one of the allowed values.
func IsIn(s string, allowed ...string) bool {
	return slices.Contains(allowed, s)
}

func Equals(s, other string) bool {
	return s == other
}

// Contains reports whether s contains sub, optionally ignoring case.
func Contains(s, sub string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	return strings.Contains(s, sub)
}

// patterns bounds the compiled expressions kept for Matches; schemas and custom
// rules can introduce arbitrary patterns.
var patterns = cache.New[string, *regexp.Regexp](256)

// Matches reports whether s matches the regular expression pattern.
// Compiled patterns are cached; an invalid pattern never matches.
func Matches(s, pattern string) bool {
	re, err := compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func compile(pattern string) (*regexp.Regexp, error) {
	return patterns.GetOrLoad(pattern, func() (*regexp.Regexp, error) {
		return regexp.Compile(pattern)
	})
}
