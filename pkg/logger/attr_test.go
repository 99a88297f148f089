package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("chain", logger.Stage("validate"), slog.Int("errors", 2))
	require.Equal(t, "chain", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "stage", g[0].Key)
	assert.Equal(t, "errors", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "abc", logger.RequestID("abc").Value.String())
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestPipelineAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want string
	}{
		{logger.Stage("sanitize"), "stage", "sanitize"},
		{logger.Location("body"), "location", "body"},
		{logger.Fields([]string{"email", "items[*].sku"}), "fields", "email,items[*].sku"},
		{logger.Param("items[0].sku"), "param", "items[0].sku"},
		{logger.Outcome("failed"), "outcome", "failed"},
		{logger.Component("check"), "component", "check"},
		{logger.Handler("signup"), "handler", "signup"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
		assert.Equal(t, tt.want, tt.attr.Value.String())
	}

	d := logger.Duration(150 * time.Millisecond)
	assert.Equal(t, "duration", d.Key)
	assert.Equal(t, 150*time.Millisecond, d.Value.Duration())
}
