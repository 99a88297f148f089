package check_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
)

func TestRequest_SetAndLookup(t *testing.T) {
	t.Parallel()

	req := check.NewRequest(nil, check.Data{}) //nolint:staticcheck // nil context falls back to Background
	assert.NotNil(t, req.Context())

	require.NoError(t, req.Set(check.LocationBody, "user.tags[1]", "b"))
	v, ok := req.Lookup(check.LocationBody, "user.tags")
	require.True(t, ok)
	assert.Equal(t, []any{nil, "b"}, v)

	require.NoError(t, req.Set(check.LocationHeaders, "X-Trace", "1"))
	v, ok = req.Lookup(check.LocationHeaders, "x-trace")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = req.Lookup(check.LocationQuery, "missing")
	assert.False(t, ok)
}

func TestRequest_Decode(t *testing.T) {
	t.Parallel()

	type signup struct {
		Email string `json:"email"`
		Age   int64  `json:"age"`
	}

	req := check.NewRequest(context.Background(), check.Data{
		Body: map[string]any{"email": "a@b.co", "age": "21"},
	})
	require.NoError(t, check.Body("age").ToInt().Run(context.Background(), req))

	var dst signup
	require.NoError(t, req.Decode(check.LocationBody, &dst))
	assert.Equal(t, signup{Email: "a@b.co", Age: 21}, dst)
}

func TestRequest_ValidationErrorsReturnsACopy(t *testing.T) {
	t.Parallel()

	req := check.NewRequest(context.Background(), check.Data{Body: map[string]any{}})
	require.NoError(t, check.Body("a").Exists().Run(context.Background(), req))

	errs := req.ValidationErrors()
	errs[0].Msg = "changed"
	assert.Equal(t, check.DefaultMessage, req.ValidationErrors()[0].Msg)
}

func TestRequestFromContext(t *testing.T) {
	t.Parallel()

	_, ok := check.RequestFrom(context.Background())
	assert.False(t, ok)

	req := check.NewRequest(context.Background(), check.Data{})
	got, ok := check.RequestFrom(check.WithRequest(context.Background(), req))
	require.True(t, ok)
	assert.Same(t, req, got)
}

func TestRequest_NilReceiver(t *testing.T) {
	t.Parallel()

	var req *check.Request
	assert.Nil(t, req.HTTP())
	assert.NotNil(t, req.Context())
}
