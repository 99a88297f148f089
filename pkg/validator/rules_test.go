package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

func ptr[T any](v T) *T { return &v }

func TestIsEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"user@example.com", "first.last+tag@sub.example.org"}
	invalid := []string{"", "   ", "plain", "user@localhost", "@example.com", "user@.example.com", "Bob <bob@example.com>"}

	for _, s := range valid {
		assert.True(t, validator.IsEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, validator.IsEmail(s), s)
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.IsURL("https://example.com/path?q=1"))
	assert.True(t, validator.IsURL("http://localhost:8080"))
	assert.False(t, validator.IsURL("ftp://example.com"))
	assert.False(t, validator.IsURL("example.com"))
	assert.False(t, validator.IsURL("https://"))
}

func TestIsUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.IsUUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, validator.IsUUID("550e8400e29b41d4a716446655440000"))
	assert.False(t, validator.IsUUID("550e8400-e29b-41d4-a716-44665544000g"))
	assert.False(t, validator.IsUUID(""))
}

func TestAlpha(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.IsAlpha("abcXYZ"))
	assert.False(t, validator.IsAlpha("abc1"))
	assert.True(t, validator.IsAlphanumeric("abc123"))
	assert.False(t, validator.IsAlphanumeric("abc-123"))
}

func TestLength(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Length("héllo", 5, 5))
	assert.False(t, validator.Length("hi", 3, -1))
	assert.True(t, validator.Length("a long string", 3, -1))
	assert.False(t, validator.Length("toolong", 0, 3))
	assert.True(t, validator.IsEmpty(""))
	assert.False(t, validator.IsEmpty(" "))
}

func TestChoice(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.IsIn("b", "a", "b"))
	assert.False(t, validator.IsIn("c", "a", "b"))
	assert.False(t, validator.IsIn("a"))
	assert.True(t, validator.Equals("x", "x"))
	assert.True(t, validator.Contains("Hello", "ell", false))
	assert.True(t, validator.Contains("Hello", "ELL", true))
	assert.False(t, validator.Contains("Hello", "ELL", false))
}

func TestMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Matches("abc-123", `^[a-z]+-\d+$`))
	assert.True(t, validator.Matches("xyz-9", `^[a-z]+-\d+$`))
	assert.False(t, validator.Matches("ABC", `^[a-z]+$`))
	assert.False(t, validator.Matches("anything", `(`))
}

func TestNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.IsInt("42"))
	assert.True(t, validator.IsInt("-3"))
	assert.False(t, validator.IsInt("4.2"))
	assert.False(t, validator.IsInt(" 4"))
	assert.True(t, validator.IsInt("18", validator.IntRange{Min: ptr(int64(18))}))
	assert.False(t, validator.IsInt("17", validator.IntRange{Min: ptr(int64(18))}))
	assert.False(t, validator.IsInt("200", validator.IntRange{Max: ptr(int64(150))}))

	assert.True(t, validator.IsFloat("3.14"))
	assert.True(t, validator.IsFloat("10"))
	assert.False(t, validator.IsFloat("Inf"))
	assert.False(t, validator.IsFloat("NaN"))
	assert.False(t, validator.IsFloat("0x10"))
	assert.False(t, validator.IsFloat(""))
	assert.False(t, validator.IsFloat("0.5", validator.FloatRange{Min: ptr(1.0)}))

	assert.True(t, validator.IsBoolean("true"))
	assert.True(t, validator.IsBoolean("0"))
	assert.False(t, validator.IsBoolean("yes"))
}
