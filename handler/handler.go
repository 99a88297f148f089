package handler

import (
	"net/http"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
)

// HandlerFunc handles a request whose fields passed every chain. R is decoded
// from the sanitized data, so it sees trimmed, normalized and converted values.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ErrorHandler handles errors from decoding, checking or rendering.
type ErrorHandler func(ctx Context, err error)

// Decorator wraps a HandlerFunc. The first decorator given is the outermost.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

// WrapOption configures Wrap.
type WrapOption[R any] func(*wrapConfig[R])

type wrapConfig[R any] struct {
	chains       check.Chains
	decodeFrom   []check.Location
	bindOpts     []check.BindOption
	errorHandler ErrorHandler
	decorators   []Decorator[R]
}

// WithChains runs chains, in order, before the handler.
func WithChains[R any](chains ...check.Invoker) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.chains = append(c.chains, chains...)
	}
}

// WithDecodeFrom decodes R from the given locations, later ones overwriting
// earlier ones. The default is the body.
func WithDecodeFrom[R any](locations ...check.Location) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.decodeFrom = locations
	}
}

// WithBindOptions sets body limits for requests not decoded by check.Middleware.
func WithBindOptions[R any](opts ...check.BindOption) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.bindOpts = append(c.bindOpts, opts...)
	}
}

func WithErrorHandler[R any](h ErrorHandler) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func WithDecorators[R any](decorators ...Decorator[R]) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc:
//
//  1. the request is decoded into a check.Request, or the one stored by
//     check.Middleware is reused;
//  2. the chains run; a fault goes to the error handler;
//  3. accumulated validation errors go to the error handler (422 by default);
//  4. R is decoded from the sanitized data and the handler runs.
//
//	http.Handle("/signup", handler.Wrap(signup,
//		handler.WithChains[SignupRequest](
//			check.Body("email").Trim().NormalizeEmail().IsEmail(),
//			check.Body("password").IsLength(8, -1),
//		),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{
		decodeFrom:   []check.Location{check.LocationBody},
		errorHandler: NewErrorHandler(nil),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	final := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		final = cfg.decorators[i](final)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := check.RequestFrom(r.Context())
		if !ok {
			var err error
			req, err = check.FromHTTP(r, cfg.bindOpts...)
			if err != nil {
				cfg.errorHandler(NewContext(w, r), err)
				return
			}
			r = r.WithContext(check.WithRequest(r.Context(), req))
		} else {
			req.BindRouteParams(r)
		}
		ctx := NewContext(w, r)

		if err := cfg.chains.Run(r.Context(), req); err != nil {
			cfg.errorHandler(ctx, err)
			return
		}
		if err := check.ValidationResult(req).Err(); err != nil {
			cfg.errorHandler(ctx, err)
			return
		}

		var in R
		for _, loc := range cfg.decodeFrom {
			if req.Data(loc) == nil {
				continue
			}
			if err := req.Decode(loc, &in); err != nil {
				cfg.errorHandler(ctx, ErrBadRequest)
				return
			}
		}

		resp := final(ctx, in)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
