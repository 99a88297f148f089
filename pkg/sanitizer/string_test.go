package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fieldcheck/pkg/sanitizer"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes leading and trailing spaces",
			input:    "  hello world  ",
			expected: "hello world",
		},
		{
			name:     "removes tabs and newlines",
			input:    "\t\nhello\n\t",
			expected: "hello",
		},
		{
			name:     "handles whitespace-only string",
			input:    "   \t\n  ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.Trim(tt.input))
		})
	}
}

func TestTrimChars(t *testing.T) {
	assert.Equal(t, "hello", sanitizer.TrimChars("-_")("--hello__"))
	assert.Equal(t, "hello", sanitizer.TrimChars("")("  hello "))
	assert.Equal(t, "hello--", sanitizer.LTrim("-")("--hello--"))
	assert.Equal(t, "--hello", sanitizer.RTrim("-")("--hello--"))
	assert.Equal(t, "hello ", sanitizer.LTrim("")("  hello "))
	assert.Equal(t, "  hello", sanitizer.RTrim("")("  hello \n"))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", sanitizer.NormalizeWhitespace("  a \t b\n\nc "))
}

func TestHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;x&lt;/b&gt;", sanitizer.EscapeHTML("<b>x</b>"))
	assert.Equal(t, "<b>", sanitizer.UnescapeHTML("&lt;b&gt;"))
	assert.Equal(t, "bold & safe", sanitizer.StripHTML("<b>bold</b> &amp; <i>safe</i>"))
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			input:    "  John.Doe@Example.COM ",
			expected: "john.doe@example.com",
		},
		{
			name:     "collapses consecutive dots in local part",
			input:    "john..doe.@example.com",
			expected: "john.doe@example.com",
		},
		{
			name:     "leaves malformed input mostly untouched",
			input:    "Not-An-Email",
			expected: "not-an-email",
		},
		{
			name:     "ignores addresses with several at signs",
			input:    "a@b@c",
			expected: "a@b@c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.NormalizeEmail(tt.input))
		})
	}
}

func TestUnicode(t *testing.T) {
	assert.Equal(t, "\u00e9", sanitizer.NormalizeUnicode("e\u0301"))
	assert.Equal(t, "Hello World", sanitizer.Title("hello world"))
}

func TestApplyAndCompose(t *testing.T) {
	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.NormalizeWhitespace, sanitizer.ToLower)
	assert.Equal(t, "mixed case input", clean("  Mixed   CASE Input\n"))
	assert.Equal(t, "HI", sanitizer.Apply(" hi ", sanitizer.Trim, sanitizer.ToUpper))
	assert.Equal(t, "same", sanitizer.Apply("same"))
}
