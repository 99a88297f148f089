package check

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	// DefaultMaxBodySize limits JSON and form bodies (1MB).
	DefaultMaxBodySize = 1 << 20
	// DefaultMaxMemory limits multipart forms kept in memory (10MB).
	DefaultMaxMemory = 10 << 20
)

// BindOption configures FromHTTP.
type BindOption func(*bindConfig)

type bindConfig struct {
	maxBodySize int64
	maxMemory   int64
}

func WithMaxBodySize(n int64) BindOption {
	return func(c *bindConfig) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

func WithMaxMemory(n int64) BindOption {
	return func(c *bindConfig) {
		if n > 0 {
			c.maxMemory = n
		}
	}
}

// FromHTTP decodes an HTTP request into a Request:
//
//   - query: URL query values
//   - headers: header values, names lower-cased
//   - cookies: cookie values by name
//   - params: chi URL parameters, when routed through chi
//   - body: JSON, urlencoded or multipart form values; other media types are left unread
//
// A key with one value maps to a string, a repeated key to a []any of strings.
// The JSON body is restored on r so downstream handlers can read it again.
func FromHTTP(r *http.Request, opts ...BindOption) (*Request, error) {
	if r == nil {
		return nil, ErrNilRequest
	}
	cfg := &bindConfig{maxBodySize: DefaultMaxBodySize, maxMemory: DefaultMaxMemory}
	for _, opt := range opts {
		opt(cfg)
	}

	body, err := decodeBody(r, cfg)
	if err != nil {
		return nil, err
	}

	cookies := make(map[string]any)
	for _, c := range r.Cookies() {
		if _, seen := cookies[c.Name]; !seen {
			cookies[c.Name] = c.Value
		}
	}

	req := NewRequest(r.Context(), Data{
		Body:    body,
		Query:   valuesToMap(r.URL.Query()),
		Params:  routeParams(r),
		Headers: valuesToMap(r.Header),
		Cookies: cookies,
	})
	req.http = r
	return req, nil
}

func valuesToMap[M ~map[string][]string](values M) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
			continue
		case 1:
			out[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			out[k] = list
		}
	}
	return out
}

func routeParams(r *http.Request) map[string]any {
	params := make(map[string]any)
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}

// BindRouteParams copies the chi URL params of hr into the params location.
// chi resolves params only after router-level middleware has run, so a Request
// decoded there sees none. Params already present are kept.
func (r *Request) BindRouteParams(hr *http.Request) {
	if r == nil || hr == nil {
		return
	}
	params := routeParams(hr)
	if len(params) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	tree, _ := r.trees[LocationParams].(map[string]any)
	if tree == nil {
		tree = make(map[string]any, len(params))
		r.trees[LocationParams] = tree
	}
	for k, v := range params {
		if _, ok := tree[k]; !ok {
			tree[k] = v
		}
	}
}

func decodeBody(r *http.Request, cfg *bindConfig) (any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseBody, err)
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return decodeJSON(r, cfg.maxBodySize)
	case mediaType == "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBodySize)
		if err := r.ParseForm(); err != nil {
			return nil, formError(err, cfg.maxBodySize)
		}
		return valuesToMap(r.PostForm), nil
	case mediaType == "multipart/form-data":
		r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBodySize)
		if err := r.ParseMultipartForm(cfg.maxMemory); err != nil {
			return nil, formError(err, cfg.maxBodySize)
		}
		if r.MultipartForm == nil {
			return map[string]any{}, nil
		}
		return valuesToMap(r.MultipartForm.Value), nil
	default:
		return nil, nil
	}
}

func formError(err error, limit int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	return errors.Join(ErrFailedToParseBody, err)
}

func decodeJSON(r *http.Request, limit int64) (any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseBody, err)
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.Join(ErrFailedToParseBody, err)
	}
	return body, nil
}
