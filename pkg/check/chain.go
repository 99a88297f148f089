package check

import (
	"context"
	"errors"
	"net/http"
	"slices"
)

// ContextHandler declares how a chain treats its fields as a whole.
type ContextHandler interface {
	Optional(mode ...OptionalMode) *Chain
	WithMessage(msg string) *Chain
	Not() *Chain
}

// Sanitizers declares value transformations, applied in declaration order.
type Sanitizers interface {
	Trim(chars ...string) *Chain
	ToLower() *Chain
	ToUpper() *Chain
	Escape() *Chain
	StripTags() *Chain
	NormalizeEmail() *Chain
	NormalizeUnicode() *Chain
	ToInt() *Chain
	ToFloat() *Chain
	ToBoolean(strict ...bool) *Chain
	Customize(name string, fn SanitizerFunc) *Chain
}

// Validators declares the rules every selected value must satisfy.
type Validators interface {
	Exists() *Chain
	NotEmpty() *Chain
	IsEmail() *Chain
	IsUUID() *Chain
	IsURL() *Chain
	IsInt(bounds ...IntBounds) *Chain
	IsFloat(bounds ...FloatBounds) *Chain
	IsBoolean() *Chain
	IsLength(min, max int) *Chain
	Matches(pattern string) *Chain
	IsIn(values ...string) *Chain
	Equals(value string) *Chain
	Custom(name string, fn ValidatorFunc) *Chain
	ExistsIn(l Lookup, scope string) *Chain
	NotExistsIn(l Lookup, scope string) *Chain
}

// Invoker runs a chain against a request.
type Invoker interface {
	Run(ctx context.Context, req *Request) error
	Invoke(req *Request, next func(error))
	Handler(next http.Handler) http.Handler
}

// FaultHandler writes the response for a fault raised while running a chain over
// an HTTP request.
type FaultHandler func(w http.ResponseWriter, r *http.Request, err error)

// Chain declares which fields to read, from where, and how to sanitize and
// validate them. Declare chains once at setup; invocations take a snapshot of the
// declaration, so a chain may be run concurrently for different requests.
type Chain struct {
	fields    []string
	locations []Location
	message   string
	optional  OptionalMode

	sanitizers  []Sanitization
	validations []Validation
	negateNext  bool

	executor *Executor
	faults   FaultHandler
}

var (
	_ ContextHandler = (*Chain)(nil)
	_ Sanitizers     = (*Chain)(nil)
	_ Validators     = (*Chain)(nil)
	_ Invoker        = (*Chain)(nil)
)

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithExecutor runs the chain with e instead of DefaultExecutor.
func WithExecutor(e *Executor) ChainOption {
	return func(c *Chain) {
		if e != nil {
			c.executor = e
		}
	}
}

// WithFaultHandler replaces DefaultFaultHandler for Handler.
func WithFaultHandler(h FaultHandler) ChainOption {
	return func(c *Chain) {
		if h != nil {
			c.faults = h
		}
	}
}

// New creates a chain for fields in locations. An empty message falls back to
// DefaultMessage.
func New(fields []string, locations []Location, message string, opts ...ChainOption) *Chain {
	c := &Chain{
		fields:    slices.Clone(fields),
		locations: slices.Clone(locations),
		message:   message,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check searches fields in every location.
func Check(fields ...string) *Chain { return New(fields, AllLocations, "") }

func Body(fields ...string) *Chain    { return New(fields, []Location{LocationBody}, "") }
func Query(fields ...string) *Chain   { return New(fields, []Location{LocationQuery}, "") }
func Params(fields ...string) *Chain  { return New(fields, []Location{LocationParams}, "") }
func Headers(fields ...string) *Chain { return New(fields, []Location{LocationHeaders}, "") }
func Cookies(fields ...string) *Chain { return New(fields, []Location{LocationCookies}, "") }

// Apply attaches options to an existing chain. It is handy with the
// location constructors, which take only fields.
func (c *Chain) Apply(opts ...ChainOption) *Chain {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Optional skips absent fields. With no argument, nil values are absent;
// OptionalFalsy also skips "", 0 and false.
func (c *Chain) Optional(mode ...OptionalMode) *Chain {
	c.optional = OptionalNil
	if len(mode) > 0 {
		c.optional = mode[0]
	}
	return c
}

// WithMessage sets the message of the last declared validator, or the chain
// message when there is none yet.
func (c *Chain) WithMessage(msg string) *Chain {
	if n := len(c.validations); n > 0 {
		c.validations[n-1].Message = msg
		return c
	}
	c.message = msg
	return c
}

// Not negates the next validator.
func (c *Chain) Not() *Chain {
	c.negateNext = true
	return c
}

func (c *Chain) sanitize(name string, fn SanitizerFunc) *Chain {
	c.sanitizers = append(c.sanitizers, Sanitization{Name: name, Fn: fn})
	return c
}

func (c *Chain) validate(name string, fn ValidatorFunc) *Chain {
	c.validations = append(c.validations, Validation{Name: name, Fn: fn, Negated: c.negateNext})
	c.negateNext = false
	return c
}

// snapshot copies the declaration for one invocation.
func (c *Chain) snapshot() *Context {
	return NewContext(c.fields, c.locations, c.message,
		WithOptional(c.optional),
		WithSanitizers(c.sanitizers...),
		WithValidations(c.validations...),
	)
}

func (c *Chain) exec() *Executor {
	if c.executor != nil {
		return c.executor
	}
	return DefaultExecutor()
}

// Run executes the chain. Validation failures are recorded on req and Run returns
// nil; any other error is a fault and is returned unchanged.
func (c *Chain) Run(ctx context.Context, req *Request) error {
	if req == nil {
		return ErrNilRequest
	}
	if ctx == nil {
		ctx = req.Context()
	}
	return c.exec().Run(ctx, req, c.snapshot())
}

// Invoke runs the chain and calls next exactly once: with nil when the chain
// passed or failed validation, with the fault otherwise.
func (c *Chain) Invoke(req *Request, next func(error)) {
	err := c.Run(req.Context(), req)
	if next != nil {
		next(err)
	}
}

// Handler is the middleware form of the chain. The Request is shared through the
// request context, so chains stacked on one route accumulate into the same errors.
func (c *Chain) Handler(next http.Handler) http.Handler {
	return chainHandler(next, c.faults, c)
}

// Chains runs several chains in order as one unit.
type Chains []Invoker

// All groups chains. They run in order and stop at the first fault.
func All(chains ...Invoker) Chains {
	return Chains(chains)
}

func (cs Chains) Run(ctx context.Context, req *Request) error {
	for _, c := range cs {
		if err := c.Run(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (cs Chains) Invoke(req *Request, next func(error)) {
	err := cs.Run(req.Context(), req)
	if next != nil {
		next(err)
	}
}

func (cs Chains) Handler(next http.Handler) http.Handler {
	return chainHandler(next, nil, cs)
}

func chainHandler(next http.Handler, faults FaultHandler, inv Invoker) http.Handler {
	if faults == nil {
		faults = DefaultFaultHandler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := RequestFrom(r.Context())
		if !ok {
			var err error
			req, err = FromHTTP(r)
			if err != nil {
				faults(w, r, err)
				return
			}
			r = r.WithContext(WithRequest(r.Context(), req))
		} else {
			req.BindRouteParams(r)
		}

		if err := inv.Run(r.Context(), req); err != nil {
			faults(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Middleware decodes the request once and stores it in the context for the chains
// and handlers that follow. Decoding errors go to faults, or DefaultFaultHandler.
func Middleware(faults FaultHandler, opts ...BindOption) func(http.Handler) http.Handler {
	if faults == nil {
		faults = DefaultFaultHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := RequestFrom(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}
			req, err := FromHTTP(r, opts...)
			if err != nil {
				faults(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithRequest(r.Context(), req)))
		})
	}
}

// DefaultFaultHandler answers 413 for oversized bodies, 400 for bodies that could
// not be decoded and 500 for everything else.
func DefaultFaultHandler(w http.ResponseWriter, _ *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
	case errors.Is(err, ErrFailedToParseBody):
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
