// Package sanitizer provides the string transforms and coercions applied to request
// field values before they are validated.
//
// Every helper is a small, stateless function. String transforms have the shape
// func(string) string so they can be chained with Apply and Compose; coercions
// (ToInt, ToFloat, ToBool) parse a string and report whether it was well formed.
//
// The functions are grouped as follows:
//
//   - Whitespace and case – Trim, TrimChars, LTrim, RTrim, ToLower, ToUpper, Title,
//     NormalizeWhitespace.
//   - Markup – EscapeHTML, UnescapeHTML, StripHTML.
//   - Formats – NormalizeEmail, NormalizeUnicode (NFC via golang.org/x/text).
//   - Coercions – ToInt, ToFloat, ToBool.
//
// # Usage
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.NormalizeWhitespace,
//	    sanitizer.ToLower,
//	)
//
//	clean("  Mixed   CASE ") // "mixed case"
//
// The check package wraps these helpers as chain sanitizers (Chain.Trim,
// Chain.NormalizeEmail, Chain.ToInt and so on) and applies them element-wise when a
// field holds a list.
package sanitizer
