package sanitizer

import (
	"html"
	"regexp"
	"strings"
)

var (
	dotRegex        = regexp.MustCompile(`\.+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimChars removes leading and trailing characters contained in chars.
// An empty chars trims whitespace.
func TrimChars(chars string) Func {
	if chars == "" {
		return Trim
	}
	return func(s string) string {
		return strings.Trim(s, chars)
	}
}

// LTrim removes leading characters contained in chars, or whitespace when chars is empty.
func LTrim(chars string) Func {
	return func(s string) string {
		if chars == "" {
			return strings.TrimLeft(s, " \t\r\n\v\f")
		}
		return strings.TrimLeft(s, chars)
	}
}

// RTrim removes trailing characters contained in chars, or whitespace when chars is empty.
func RTrim(chars string) Func {
	return func(s string) string {
		if chars == "" {
			return strings.TrimRight(s, " \t\r\n\v\f")
		}
		return strings.TrimRight(s, chars)
	}
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// NormalizeWhitespace collapses runs of whitespace into one space and trims the result.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// EscapeHTML replaces <, >, &, ' and " with HTML entities.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// StripHTML removes tags and unescapes entities.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// NormalizeEmail lowercases the address and collapses dots in the local part.
// Strings that are not of the form local@domain are only trimmed and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	// Consecutive dots break delivery on most providers
	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}
