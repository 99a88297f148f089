package check

import (
	"context"

	"github.com/dmitrymomot/fieldcheck/pkg/validator"
)

type (
	// IntBounds limits IsInt. Nil bounds are open.
	IntBounds = validator.IntRange
	// FloatBounds limits IsFloat. Nil bounds are open.
	FloatBounds = validator.FloatRange
)

// stringRule fails with ErrInvalidValue unless every element of the value passes.
// Nil is checked as the empty string.
func stringRule(ok func(string) bool) ValidatorFunc {
	return func(_ context.Context, value any, _ Meta) error {
		for _, v := range elements(value) {
			if !ok(stringify(v)) {
				return ErrInvalidValue
			}
		}
		return nil
	}
}

// Exists fails when the field is missing or null.
func (c *Chain) Exists() *Chain {
	return c.validate("exists", func(_ context.Context, value any, _ Meta) error {
		if value == nil {
			return ErrInvalidValue
		}
		return nil
	})
}

// NotEmpty fails on missing, null and empty values, including empty lists and objects.
func (c *Chain) NotEmpty() *Chain {
	return c.validate("notEmpty", func(_ context.Context, value any, _ Meta) error {
		switch v := value.(type) {
		case nil:
			return ErrInvalidValue
		case []any:
			if len(v) == 0 {
				return ErrInvalidValue
			}
			for _, item := range v {
				if validator.IsEmpty(stringify(item)) {
					return ErrInvalidValue
				}
			}
		case map[string]any:
			if len(v) == 0 {
				return ErrInvalidValue
			}
		default:
			if validator.IsEmpty(stringify(v)) {
				return ErrInvalidValue
			}
		}
		return nil
	})
}

func (c *Chain) IsEmail() *Chain {
	return c.validate("isEmail", stringRule(validator.IsEmail))
}

func (c *Chain) IsUUID() *Chain {
	return c.validate("isUUID", stringRule(validator.IsUUID))
}

// IsURL accepts absolute http and https URLs.
func (c *Chain) IsURL() *Chain {
	return c.validate("isURL", stringRule(validator.IsURL))
}

func (c *Chain) IsInt(bounds ...IntBounds) *Chain {
	return c.validate("isInt", stringRule(func(s string) bool {
		return validator.IsInt(s, bounds...)
	}))
}

func (c *Chain) IsFloat(bounds ...FloatBounds) *Chain {
	return c.validate("isFloat", stringRule(func(s string) bool {
		return validator.IsFloat(s, bounds...)
	}))
}

func (c *Chain) IsBoolean() *Chain {
	return c.validate("isBoolean", stringRule(validator.IsBoolean))
}

// IsLength checks the rune count. A negative max means no upper bound.
func (c *Chain) IsLength(min, max int) *Chain {
	return c.validate("isLength", stringRule(func(s string) bool {
		return validator.Length(s, min, max)
	}))
}

// Matches checks the value against a regular expression. An invalid pattern
// never matches.
func (c *Chain) Matches(pattern string) *Chain {
	return c.validate("matches", stringRule(func(s string) bool {
		return validator.Matches(s, pattern)
	}))
}

func (c *Chain) IsIn(values ...string) *Chain {
	return c.validate("isIn", stringRule(func(s string) bool {
		return validator.IsIn(s, values...)
	}))
}

func (c *Chain) Equals(value string) *Chain {
	return c.validate("equals", stringRule(func(s string) bool {
		return validator.Equals(s, value)
	}))
}

// Custom adds a validator. Return ErrInvalidValue to fail with the declared
// message, any other error to fail with its text, or Unexpected(err) to fault.
func (c *Chain) Custom(name string, fn ValidatorFunc) *Chain {
	if name == "" {
		name = "custom"
	}
	return c.validate(name, fn)
}

// Lookup answers whether a value is known within a scope, for example a column of
// a table or a Redis set.
type Lookup interface {
	Exists(ctx context.Context, scope string, value any) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, scope string, value any) (bool, error)

func (f LookupFunc) Exists(ctx context.Context, scope string, value any) (bool, error) {
	return f(ctx, scope, value)
}

// ExistsIn fails unless every value is found in scope. Missing values fail.
// Lookup errors are faults.
func (c *Chain) ExistsIn(l Lookup, scope string) *Chain {
	return c.validate("existsIn", lookupRule(l, scope, true))
}

// NotExistsIn fails when any value is found in scope. Missing values pass.
// Lookup errors are faults.
func (c *Chain) NotExistsIn(l Lookup, scope string) *Chain {
	return c.validate("notExistsIn", lookupRule(l, scope, false))
}

func lookupRule(l Lookup, scope string, want bool) ValidatorFunc {
	return func(ctx context.Context, value any, _ Meta) error {
		if value == nil {
			if want {
				return ErrInvalidValue
			}
			return nil
		}
		if l == nil {
			return Unexpected(ErrNilLookup)
		}
		for _, v := range elements(value) {
			found, err := l.Exists(ctx, scope, v)
			if err != nil {
				return Unexpected(err)
			}
			if found != want {
				return ErrInvalidValue
			}
		}
		return nil
	}
}
