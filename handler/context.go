package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
)

// Context wraps http.Request and http.ResponseWriter with context.Context and
// gives access to the decoded, sanitized request data.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Checked() *check.Request
}

// NewContext creates a Context for r. The check.Request stored in the request
// context by check.Middleware or a chain handler is picked up when present.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	req, _ := check.RequestFrom(r.Context())
	return &httpContext{w: w, r: r, checked: req}
}

type httpContext struct {
	w       http.ResponseWriter
	r       *http.Request
	checked *check.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *httpContext) Checked() *check.Request             { return c.checked }

// Delegate context.Context methods to the request's context
func (c *httpContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *httpContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *httpContext) Err() error {
	return c.r.Context().Err()
}

func (c *httpContext) Value(key any) any {
	return c.r.Context().Value(key)
}
