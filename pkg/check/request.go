package check

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/fieldcheck/pkg/fieldpath"
)

// Data is the decoded content of a request, one tree per location.
type Data struct {
	Body    any
	Query   map[string]any
	Params  map[string]any
	Headers map[string]any
	Cookies map[string]any
}

// Request is the unit chains operate on. It holds the decoded request data that
// stages read and write back to, and the validation errors accumulated by every
// chain run against it.
type Request struct {
	ctx  context.Context
	http *http.Request

	mu    sync.RWMutex
	trees map[Location]any

	errMu sync.Mutex
	errs  []ValidationError
}

// NewRequest builds a Request from already decoded data. Header names are
// lower-cased.
func NewRequest(ctx context.Context, data Data) *Request {
	if ctx == nil {
		ctx = context.Background()
	}
	trees := map[Location]any{
		LocationQuery:   orEmpty(data.Query),
		LocationParams:  orEmpty(data.Params),
		LocationHeaders: lowerKeys(data.Headers),
		LocationCookies: orEmpty(data.Cookies),
	}
	if data.Body != nil {
		trees[LocationBody] = data.Body
	}
	return &Request{ctx: ctx, trees: trees}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	return m
}

func lowerKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Context returns the context the request was created with.
func (r *Request) Context() context.Context {
	if r == nil || r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// HTTP returns the underlying HTTP request, or nil for requests built with NewRequest.
func (r *Request) HTTP() *http.Request {
	if r == nil {
		return nil
	}
	return r.http
}

// Data returns the live tree stored for loc.
func (r *Request) Data(loc Location) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trees[loc]
}

// Lookup returns the value at path inside loc.
func (r *Request) Lookup(loc Location, path string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fieldpath.Get(r.trees[loc], normalizePath(loc, path))
}

// Paths resolves the wildcards of pattern against the current tree of loc.
func (r *Request) Paths(loc Location, pattern string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fieldpath.Expand(r.trees[loc], normalizePath(loc, pattern))
}

// Set writes value at path inside loc, creating intermediate containers.
func (r *Request) Set(loc Location, path string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	root, err := fieldpath.Set(r.trees[loc], normalizePath(loc, path), value)
	if err != nil {
		return err
	}
	r.trees[loc] = root
	return nil
}

// Decode copies the tree of loc into dst through its JSON representation, so dst
// can be any struct with json tags.
func (r *Request) Decode(loc Location, dst any) error {
	r.mu.RLock()
	raw, err := json.Marshal(r.trees[loc])
	r.mu.RUnlock()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// ValidationErrors returns a copy of the accumulated errors. It is nil until a
// chain fails for the first time.
func (r *Request) ValidationErrors() []ValidationError {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if r.errs == nil {
		return nil
	}
	return slices.Clone(r.errs)
}

// appendValidationErrors is the single write path of the accumulator. The read
// and the write back happen under one lock.
func (r *Request) appendValidationErrors(errs []ValidationError) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if r.errs == nil {
		r.errs = make([]ValidationError, 0, len(errs))
	}
	r.errs = append(r.errs, errs...)
}

// Header names are case-insensitive.
func normalizePath(loc Location, path string) string {
	if loc == LocationHeaders {
		return strings.ToLower(path)
	}
	return path
}

type requestKey struct{}

// WithRequest stores req in ctx so chains running later in the same HTTP request
// share its data and errors.
func WithRequest(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the Request stored by WithRequest.
func RequestFrom(ctx context.Context) (*Request, bool) {
	if ctx == nil {
		return nil, false
	}
	req, ok := ctx.Value(requestKey{}).(*Request)
	return req, ok && req != nil
}
