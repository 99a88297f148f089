package check_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
)

func TestFromHTTP_JSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/users?page=2&tag=a&tag=b", strings.NewReader(`{"name":"Ann","age":30}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	r.Header.Set("X-Request-Id", "abc")
	r.AddCookie(&http.Cookie{Name: "session", Value: "s1"})

	req, err := check.FromHTTP(r)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "Ann", "age": float64(30)}, req.Data(check.LocationBody))

	v, _ := req.Lookup(check.LocationQuery, "page")
	assert.Equal(t, "2", v)
	v, _ = req.Lookup(check.LocationQuery, "tag")
	assert.Equal(t, []any{"a", "b"}, v)
	v, _ = req.Lookup(check.LocationHeaders, "x-request-id")
	assert.Equal(t, "abc", v)
	v, _ = req.Lookup(check.LocationCookies, "session")
	assert.Equal(t, "s1", v)
	assert.Same(t, r, req.HTTP())

	// the body stays readable for the handler
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ann","age":30}`, string(raw))
}

func TestFromHTTP_Forms(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"email": {"a@b.co"}, "roles": {"x", "y"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		req, err := check.FromHTTP(r)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"email": "a@b.co", "roles": []any{"x", "y"}}, req.Data(check.LocationBody))
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		require.NoError(t, mw.WriteField("title", "hello"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/", buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		req, err := check.FromHTTP(r)
		require.NoError(t, err)
		v, _ := req.Lookup(check.LocationBody, "title")
		assert.Equal(t, "hello", v)
	})
}

func TestFromHTTP_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()
		_, err := check.FromHTTP(nil)
		assert.ErrorIs(t, err, check.ErrNilRequest)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		r.Header.Set("Content-Type", "application/json")
		_, err := check.FromHTTP(r)
		assert.ErrorIs(t, err, check.ErrFailedToParseBody)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"0123456789"}`))
		r.Header.Set("Content-Type", "application/json")
		_, err := check.FromHTTP(r, check.WithMaxBodySize(8))
		assert.ErrorIs(t, err, check.ErrBodyTooLarge)
	})

	t.Run("urlencoded body too large", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"name": {strings.Repeat("a", 64)}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		_, err := check.FromHTTP(r, check.WithMaxBodySize(16))
		assert.ErrorIs(t, err, check.ErrBodyTooLarge)
	})

	t.Run("unsupported media type leaves the body unread", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
		r.Header.Set("Content-Type", "text/plain")
		req, err := check.FromHTTP(r)
		require.NoError(t, err)
		assert.Nil(t, req.Data(check.LocationBody))
	})
}

func TestFromHTTP_ChiParams(t *testing.T) {
	t.Parallel()

	var got check.ValidationErrors
	router := chi.NewRouter()
	router.With(check.Params("id").IsUUID().WithMessage("bad id").Handler).
		Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			req, ok := check.RequestFrom(r.Context())
			require.True(t, ok)
			got = check.ValidationResult(req).Errors()
			w.WriteHeader(http.StatusNoContent)
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, got, 1)
	assert.Equal(t, check.ValidationError{Location: check.LocationParams, Param: "id", Value: "42", Msg: "bad id"}, got[0])
}

func TestMiddleware_ResolvesParamsAfterRouting(t *testing.T) {
	t.Parallel()

	var (
		got check.ValidationErrors
		id  any
	)
	router := chi.NewRouter()
	router.Use(check.Middleware(nil))
	router.With(check.Params("id").Trim().ToLower().IsUUID().Handler).
		Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			req, _ := check.RequestFrom(r.Context())
			got = check.ValidationResult(req).Errors()
			id, _ = req.Lookup(check.LocationParams, "id")
			w.WriteHeader(http.StatusNoContent)
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/6BA7B810-9DAD-11D1-80B4-00C04FD430C8", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, got)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id)
}

func TestRequest_BindRouteParamsKeepsExistingValues(t *testing.T) {
	t.Parallel()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "RAW")
	rctx.URLParams.Add("slug", "post")
	hr := httptest.NewRequest(http.MethodGet, "/", nil)
	hr = hr.WithContext(context.WithValue(hr.Context(), chi.RouteCtxKey, rctx))

	req := check.NewRequest(context.Background(), check.Data{Params: map[string]any{"id": "clean"}})
	req.BindRouteParams(hr)
	req.BindRouteParams(nil)

	id, _ := req.Lookup(check.LocationParams, "id")
	slug, _ := req.Lookup(check.LocationParams, "slug")
	assert.Equal(t, "clean", id)
	assert.Equal(t, "post", slug)
}

func TestHandler_StackedChainsShareTheRequest(t *testing.T) {
	t.Parallel()

	var got check.ValidationErrors
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, _ := check.RequestFrom(r.Context())
		got = check.ValidationResult(req).Errors()
	})
	h := check.Middleware(nil)(
		check.Body("email").IsEmail().Handler(
			check.Query("page").IsInt().Handler(final),
		),
	)

	r := httptest.NewRequest(http.MethodPost, "/?page=x", strings.NewReader(`{"email":"nope"}`))
	r.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, []string{"email", "page"}, got.Fields())
}

func TestHandler_Faults(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	faulty := check.Body("a").Custom("fault", func(context.Context, any, check.Meta) error {
		return check.Unexpected(boom)
	})
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("next must not be called after a fault")
	})

	t.Run("default fault handler", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		faulty.Handler(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("custom fault handler", func(t *testing.T) {
		t.Parallel()
		var got error
		chain := check.Body("a").Custom("fault", func(context.Context, any, check.Meta) error {
			return check.Unexpected(boom)
		}).Apply(check.WithFaultHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			got = err
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		rec := httptest.NewRecorder()
		chain.Handler(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Same(t, boom, got)
	})

	t.Run("decode errors", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		check.Middleware(nil)(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"0123456789"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		check.Middleware(nil, check.WithMaxBodySize(4))(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestChains_Handler(t *testing.T) {
	t.Parallel()

	called := false
	h := check.All(
		check.Query("q").NotEmpty(),
		check.Query("limit").Optional().IsInt(),
	).Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		req, _ := check.RequestFrom(r.Context())
		assert.True(t, check.ValidationResult(req).IsEmpty())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?q=go", nil))
	assert.True(t, called)
}
