package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, header, value string) (seen string, rec *httptest.ResponseRecorder) {
	t.Helper()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.Header.Set(header, value)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates an id when none is sent", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, requestid.Middleware, requestid.Header, "")
		assert.NotEmpty(t, id)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses a valid id", func(t *testing.T) {
		t.Parallel()
		for _, valid := range []string{"abc123", "ABC-123_xyz", "550e8400-e29b-41d4-a716-446655440000"} {
			id, rec := serve(t, requestid.Middleware, requestid.Header, valid)
			assert.Equal(t, valid, id)
			assert.Equal(t, valid, rec.Header().Get(requestid.Header))
		}
	})

	t.Run("replaces an invalid id", func(t *testing.T) {
		t.Parallel()
		invalid := []string{
			"test@request#id",
			"test request id",
			"test/request/id",
			"test<script>alert(1)</script>",
			strings.Repeat("a", 129),
		}
		for _, bad := range invalid {
			id, _ := serve(t, requestid.Middleware, requestid.Header, bad)
			assert.NotEmpty(t, id)
			assert.NotEqual(t, bad, id)
		}
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	mw := requestid.New(
		requestid.WithHeader("X-Correlation-ID"),
		requestid.WithGenerator(func() string { return "fixed" }),
	)

	id, rec := serve(t, mw, "X-Correlation-ID", "")
	assert.Equal(t, "fixed", id)
	assert.Equal(t, "fixed", rec.Header().Get("X-Correlation-ID"))
	assert.Empty(t, rec.Header().Get(requestid.Header))

	id, _ = serve(t, mw, "X-Correlation-ID", "client-id")
	assert.Equal(t, "client-id", id)
}

func TestContext(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "test-id", requestid.FromContext(requestid.WithContext(context.Background(), "test-id")))
	assert.Empty(t, requestid.FromContext(context.Background()))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(requestid.LoggerExtractor()))

	log.InfoContext(requestid.WithContext(context.Background(), "req-1"), "with id")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	assert.NotContains(t, buf.String(), "request_id")
}
