package check

import (
	"context"
	"slices"
)

// DefaultMessage is used when neither a validation nor its chain supplies one.
const DefaultMessage = "Invalid value"

// OptionalMode selects which values make an optional field count as absent.
type OptionalMode uint8

const (
	// OptionalNone marks a required field.
	OptionalNone OptionalMode = iota
	// OptionalNil treats missing and null values as absent.
	OptionalNil
	// OptionalFalsy also treats "", 0 and false as absent.
	OptionalFalsy
)

// Meta describes the field a sanitizer or validator is looking at.
type Meta struct {
	Request      *Request
	Location     Location
	Path         string
	OriginalPath string
}

// SanitizerFunc returns the transformed value. A returned error is a fault.
type SanitizerFunc func(ctx context.Context, value any, meta Meta) (any, error)

// ValidatorFunc returns nil when value is acceptable. Returning ErrInvalidValue
// fails with the declared message; any other error fails with that error's text
// unless a message was declared; an error wrapped with Unexpected is a fault.
type ValidatorFunc func(ctx context.Context, value any, meta Meta) error

// Sanitization is one declared sanitizer.
type Sanitization struct {
	Name string
	Fn   SanitizerFunc
}

// Validation is one declared validator.
type Validation struct {
	Name    string
	Fn      ValidatorFunc
	Negated bool
	Message string
}

// Context is the declared intent of one chain invocation. It is built once per
// invocation and the same pointer is handed to every stage; it has no mutators.
type Context struct {
	fields      []string
	locations   []Location
	message     string
	optional    OptionalMode
	sanitizers  []Sanitization
	validations []Validation
}

// ContextOption attaches declared operations to a Context.
type ContextOption func(*Context)

func WithOptional(mode OptionalMode) ContextOption {
	return func(c *Context) { c.optional = mode }
}

func WithSanitizers(s ...Sanitization) ContextOption {
	return func(c *Context) { c.sanitizers = append(c.sanitizers, s...) }
}

func WithValidations(v ...Validation) ContextOption {
	return func(c *Context) { c.validations = append(c.validations, v...) }
}

// NewContext copies its inputs, so later changes to the caller's slices are not seen.
func NewContext(fields []string, locations []Location, message string, opts ...ContextOption) *Context {
	c := &Context{
		fields:    slices.Clone(fields),
		locations: slices.Clone(locations),
		message:   message,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) Fields() []string { return slices.Clone(c.fields) }
func (c *Context) Locations() []Location { return slices.Clone(c.locations) }
func (c *Context) Message() string { return c.message }
func (c *Context) Optional() OptionalMode { return c.optional }
func (c *Context) IsOptional() bool { return c.optional != OptionalNone }

func (c *Context) Sanitizers() []Sanitization { return slices.Clone(c.sanitizers) }
func (c *Context) Validations() []Validation { return slices.Clone(c.validations) }
