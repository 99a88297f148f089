package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/fieldcheck/pkg/fieldpath"
)

// SelectFields extracts one instance per declared field and location, expanding
// wildcards against the request data. When more than one location is searched,
// locations where the field has no value are skipped.
type SelectFields struct{}

func (SelectFields) Run(_ context.Context, req *Request, c *Context, _ []FieldInstance) Result {
	multi := len(c.locations) > 1

	var out []FieldInstance
	for _, field := range c.fields {
		for _, loc := range c.locations {
			if !loc.Valid() {
				return Faulted(fmt.Errorf("%w: %q", ErrInvalidLocation, loc))
			}
			paths, err := req.Paths(loc, field)
			if err != nil {
				return Faulted(fmt.Errorf("check: field %q: %w", field, err))
			}
			for _, path := range paths {
				value, _ := req.Lookup(loc, path)
				if multi && value == nil {
					continue
				}
				out = append(out, NewFieldInstance(loc, field, path, value))
			}
		}
	}
	return OK(out)
}

// Sanitize runs the declared sanitizers, in declaration order, on every instance.
// A sanitizer error is a fault.
type Sanitize struct{}

func (Sanitize) Run(ctx context.Context, req *Request, c *Context, prev []FieldInstance) Result {
	if len(c.sanitizers) == 0 {
		return OK(prev)
	}

	out := make([]FieldInstance, len(prev))
	for i, inst := range prev {
		meta := metaOf(req, inst)
		for _, s := range c.sanitizers {
			v, err := s.Fn(ctx, inst.Value, meta)
			if err != nil {
				return Faulted(faultCause(err))
			}
			inst.Value = v
		}
		out[i] = inst
	}
	return OK(out)
}

// RemoveOptionals drops the instances an optional chain treats as absent.
type RemoveOptionals struct{}

func (RemoveOptionals) Run(_ context.Context, _ *Request, c *Context, prev []FieldInstance) Result {
	if c.optional == OptionalNone {
		return OK(prev)
	}

	out := make([]FieldInstance, 0, len(prev))
	for _, inst := range prev {
		switch {
		case c.optional == OptionalFalsy && isFalsy(inst.Value):
			continue
		case inst.Value == nil:
			continue
		}
		out = append(out, inst)
	}
	return OK(out)
}

// EnsureInstance adds an empty instance for every declared field that produced
// none, so required-field validators have something to fail on. Optional chains
// are left as they are.
type EnsureInstance struct{}

func (EnsureInstance) Run(_ context.Context, _ *Request, c *Context, prev []FieldInstance) Result {
	if c.IsOptional() || len(c.locations) == 0 {
		return OK(prev)
	}

	seen := make(map[string]bool, len(prev))
	for _, inst := range prev {
		seen[inst.originalPath] = true
	}

	out := prev
	for _, field := range c.fields {
		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, NewFieldInstance(c.locations[0], field, field, nil))
	}
	return OK(out)
}

// PersistBack writes the current instance values back into the request so
// handlers see the same data the validators saw, whichever stage changed them.
// Values that were never present and are still nil are not written.
type PersistBack struct{}

func (PersistBack) Run(_ context.Context, req *Request, _ *Context, prev []FieldInstance) Result {
	for _, inst := range prev {
		if fieldpath.HasWildcard(inst.Path) {
			continue
		}
		if inst.Value == nil {
			if _, ok := req.Lookup(inst.location, inst.Path); !ok {
				continue
			}
		}
		if err := req.Set(inst.location, inst.Path, inst.Value); err != nil {
			return Faulted(fmt.Errorf("check: persist %s.%s: %w", inst.location, inst.Path, err))
		}
	}
	return OK(prev)
}

// Validate runs every declared validation on every instance and fails with all
// the violations found.
type Validate struct{}

func (Validate) Run(ctx context.Context, req *Request, c *Context, prev []FieldInstance) Result {
	var errs []ValidationError
	for _, inst := range prev {
		meta := metaOf(req, inst)
		for _, v := range c.validations {
			err := v.Fn(ctx, inst.Value, meta)

			var fault *FaultError
			if errors.As(err, &fault) {
				return Faulted(faultCause(fault))
			}

			failed := err != nil
			if v.Negated {
				failed = !failed
			}
			if !failed {
				continue
			}
			errs = append(errs, ValidationError{
				Location: inst.location,
				Param:    inst.Path,
				Value:    inst.Value,
				Msg:      messageFor(v, err, c),
			})
		}
	}
	if len(errs) > 0 {
		return Failed(errs...)
	}
	return OK(prev)
}

func metaOf(req *Request, inst FieldInstance) Meta {
	return Meta{
		Request:      req,
		Location:     inst.location,
		Path:         inst.Path,
		OriginalPath: inst.originalPath,
	}
}

// faultCause unwraps an Unexpected error so the original error reaches the caller.
func faultCause(err error) error {
	var fault *FaultError
	if errors.As(err, &fault) {
		if fault.Err == nil {
			return ErrNilFault
		}
		return fault.Err
	}
	return err
}

func messageFor(v Validation, err error, c *Context) string {
	switch {
	case v.Message != "":
		return v.Message
	case err != nil && !errors.Is(err, ErrInvalidValue):
		return err.Error()
	case c.message != "":
		return c.message
	default:
		return DefaultMessage
	}
}
