package check_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
)

const signupSchema = `
email:
  in: [body]
  sanitizers: [trim, normalizeEmail]
  rules:
    - isEmail
    - name: notExistsIn
      lookup: users
      scope: users.email
      message: Email already registered
password:
  in: [body]
  message: Password is too weak
  rules:
    - name: isLength
      min: 8
age:
  in: [query]
  optional: true
  sanitizers: [toInt]
  rules:
    - name: isInt
      min: 18
      message: Adults only
role:
  in: [body]
  optional: falsy
  rules:
    - name: isIn
      not: true
      values: [admin]
      message: Reserved role
`

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	users := check.LookupFunc(func(_ context.Context, _ string, v any) (bool, error) {
		return v == "taken@example.com", nil
	})
	chains, err := check.LoadSchema(strings.NewReader(signupSchema), check.WithLookup("users", users))
	require.NoError(t, err)
	require.Len(t, chains, 4)

	t.Run("valid input", func(t *testing.T) {
		t.Parallel()
		req := check.NewRequest(context.Background(), check.Data{
			Body:  map[string]any{"email": " New@Example.com ", "password": "correct horse", "role": ""},
			Query: map[string]any{"age": "30"},
		})
		require.NoError(t, chains.Run(context.Background(), req))
		assert.Nil(t, req.ValidationErrors())

		v, _ := req.Lookup(check.LocationBody, "email")
		assert.Equal(t, "new@example.com", v)
		v, _ = req.Lookup(check.LocationQuery, "age")
		assert.Equal(t, int64(30), v)
	})

	t.Run("invalid input keeps document order", func(t *testing.T) {
		t.Parallel()
		req := check.NewRequest(context.Background(), check.Data{
			Body:  map[string]any{"email": "taken@example.com", "password": "short", "role": "admin"},
			Query: map[string]any{"age": "12"},
		})
		require.NoError(t, chains.Run(context.Background(), req))

		errs := check.ValidationResult(req).Errors()
		assert.Equal(t, []string{"email", "password", "age", "role"}, errs.Fields())
		assert.Equal(t, []string{"Email already registered"}, errs.Get("email"))
		assert.Equal(t, []string{"Password is too weak"}, errs.Get("password"))
		assert.Equal(t, []string{"Adults only"}, errs.Get("age"))
		assert.Equal(t, []string{"Reserved role"}, errs.Get("role"))
	})
}

func TestLoadSchema_CustomOperations(t *testing.T) {
	t.Parallel()

	doc := `
code:
  in: [query]
  sanitizers: [shout]
  rules:
    - name: prefix
      args:
        with: "ABC"
`
	chains, err := check.LoadSchema(strings.NewReader(doc),
		check.WithSanitizer("shout", func(_ context.Context, v any, _ check.Meta) (any, error) {
			return strings.ToUpper(v.(string)), nil
		}),
		check.WithRule("prefix", func(args map[string]any) (check.ValidatorFunc, error) {
			prefix, ok := args["with"].(string)
			if !ok {
				return nil, errors.New("with is required")
			}
			return func(_ context.Context, v any, _ check.Meta) error {
				if s, _ := v.(string); !strings.HasPrefix(s, prefix) {
					return check.ErrInvalidValue
				}
				return nil
			}, nil
		}),
	)
	require.NoError(t, err)

	req := check.NewRequest(context.Background(), check.Data{Query: map[string]any{"code": "abc-1"}})
	require.NoError(t, chains.Run(context.Background(), req))
	assert.Nil(t, req.ValidationErrors())

	req = check.NewRequest(context.Background(), check.Data{Query: map[string]any{"code": "xyz"}})
	require.NoError(t, chains.Run(context.Background(), req))
	assert.True(t, check.ValidationResult(req).Errors().Has("code"))
}

func TestLoadSchema_FieldWithoutLocationsSearchesEverywhere(t *testing.T) {
	t.Parallel()

	chains, err := check.LoadSchema(strings.NewReader("token:\n  rules: [exists]\n"))
	require.NoError(t, err)

	req := check.NewRequest(context.Background(), check.Data{Cookies: map[string]any{"token": "t"}})
	require.NoError(t, chains.Run(context.Background(), req))
	assert.Nil(t, req.ValidationErrors())
}

func TestLoadSchema_Empty(t *testing.T) {
	t.Parallel()

	chains, err := check.LoadSchema(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, chains)
}

func TestLoadSchema_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{name: "not a mapping", doc: "- email\n", target: check.ErrInvalidSchema},
		{name: "malformed yaml", doc: "email: [", target: check.ErrInvalidSchema},
		{name: "unknown rule", doc: "email:\n  rules: [isPhone]\n", target: check.ErrUnknownRule},
		{name: "unknown sanitizer", doc: "email:\n  sanitizers: [rot13]\n", target: check.ErrUnknownSanitizer},
		{name: "unknown lookup", doc: "email:\n  rules:\n    - name: existsIn\n      lookup: nope\n", target: check.ErrUnknownLookup},
		{name: "invalid location", doc: "email:\n  in: [session]\n", target: check.ErrInvalidLocation},
		{name: "invalid optional", doc: "email:\n  optional: maybe\n", target: check.ErrInvalidSchema},
		{name: "matches without pattern", doc: "email:\n  rules: [matches]\n", target: check.ErrInvalidSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := check.LoadSchema(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}
