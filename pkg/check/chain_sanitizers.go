package check

import (
	"context"
	"strings"

	"github.com/dmitrymomot/fieldcheck/pkg/sanitizer"
)

// stringSanitizer applies fn to string values, element-wise on lists. Values of
// other types are converted to their string form first; nil stays nil.
func stringSanitizer(fn sanitizer.Func) SanitizerFunc {
	return func(_ context.Context, value any, _ Meta) (any, error) {
		return mapScalars(value, func(v any) any { return fn(stringify(v)) }), nil
	}
}

// Trim removes leading and trailing whitespace, or the given characters.
func (c *Chain) Trim(chars ...string) *Chain {
	if len(chars) > 0 {
		return c.sanitize("trim", stringSanitizer(sanitizer.TrimChars(strings.Join(chars, ""))))
	}
	return c.sanitize("trim", stringSanitizer(sanitizer.Trim))
}

func (c *Chain) ToLower() *Chain {
	return c.sanitize("toLowerCase", stringSanitizer(sanitizer.ToLower))
}

func (c *Chain) ToUpper() *Chain {
	return c.sanitize("toUpperCase", stringSanitizer(sanitizer.ToUpper))
}

// Escape replaces <, >, &, ' and " with HTML entities.
func (c *Chain) Escape() *Chain {
	return c.sanitize("escape", stringSanitizer(sanitizer.EscapeHTML))
}

func (c *Chain) StripTags() *Chain {
	return c.sanitize("stripTags", stringSanitizer(sanitizer.StripHTML))
}

func (c *Chain) NormalizeEmail() *Chain {
	return c.sanitize("normalizeEmail", stringSanitizer(sanitizer.NormalizeEmail))
}

// NormalizeUnicode converts strings to NFC.
func (c *Chain) NormalizeUnicode() *Chain {
	return c.sanitize("normalizeUnicode", stringSanitizer(sanitizer.NormalizeUnicode))
}

// ToInt converts values to int64, truncating decimals toward zero. Values that
// do not parse become nil.
func (c *Chain) ToInt() *Chain {
	return c.sanitize("toInt", func(_ context.Context, value any, _ Meta) (any, error) {
		return mapScalars(value, func(v any) any {
			switch n := v.(type) {
			case int64:
				return n
			case int:
				return int64(n)
			case float64:
				if i, ok := sanitizer.Truncate(n); ok {
					return i
				}
				return nil
			}
			if i, ok := sanitizer.ToInt(stringify(v)); ok {
				return i
			}
			return nil
		}), nil
	})
}

// ToFloat converts values to float64. Values that do not parse become nil.
func (c *Chain) ToFloat() *Chain {
	return c.sanitize("toFloat", func(_ context.Context, value any, _ Meta) (any, error) {
		return mapScalars(value, func(v any) any {
			if f, ok := v.(float64); ok {
				return f
			}
			if f, ok := sanitizer.ToFloat(stringify(v)); ok {
				return f
			}
			return nil
		}), nil
	})
}

// ToBoolean converts values to bool. In strict mode only "1" and "true" are true;
// otherwise everything except "", "0" and "false" is.
func (c *Chain) ToBoolean(strict ...bool) *Chain {
	isStrict := len(strict) > 0 && strict[0]
	return c.sanitize("toBoolean", func(_ context.Context, value any, _ Meta) (any, error) {
		return mapScalars(value, func(v any) any {
			if b, ok := v.(bool); ok {
				return b
			}
			return sanitizer.ToBool(stringify(v), isStrict)
		}), nil
	})
}

// Customize adds a sanitizer. Return Unexpected, or any error, to fault the chain.
func (c *Chain) Customize(name string, fn SanitizerFunc) *Chain {
	if name == "" {
		name = "custom"
	}
	return c.sanitize(name, fn)
}
