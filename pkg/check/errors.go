package check

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is the failure returned by built-in validators. Its text is
	// never used as a message; the validation, chain or default message is.
	ErrInvalidValue = errors.New("invalid value")

	ErrNilRequest        = errors.New("check: nil request")
	ErrInvalidLocation   = errors.New("check: invalid location")
	ErrNilRunner         = errors.New("check: stage constructor returned nil runner")
	ErrNilFault          = errors.New("check: stage faulted without an error")
	ErrFailedToParseBody = errors.New("check: failed to parse request body")
	ErrBodyTooLarge      = errors.New("check: request body too large")
	ErrInvalidSchema     = errors.New("check: invalid schema")
	ErrUnknownRule       = errors.New("check: unknown validation rule")
	ErrUnknownSanitizer  = errors.New("check: unknown sanitizer")
	ErrUnknownLookup     = errors.New("check: unknown lookup")
	ErrNilLookup         = errors.New("check: nil lookup")
)

// FaultError marks an error raised inside a validator or sanitizer as an unexpected
// fault rather than a validation failure. The pipeline propagates the wrapped error
// unchanged.
type FaultError struct {
	Err error
}

func (e *FaultError) Error() string {
	if e.Err == nil {
		return ErrNilFault.Error()
	}
	return e.Err.Error()
}

func (e *FaultError) Unwrap() error { return e.Err }

// Unexpected wraps err so a custom validator can report a broken dependency
// (a database outage, a misconfiguration) instead of failing the field.
//
//	chain.Custom(func(ctx context.Context, v any, _ check.Meta) error {
//	    taken, err := users.EmailTaken(ctx, v.(string))
//	    if err != nil {
//	        return check.Unexpected(err)
//	    }
//	    if taken {
//	        return errors.New("email already in use")
//	    }
//	    return nil
//	})
func Unexpected(err error) error {
	if err == nil {
		return nil
	}
	return &FaultError{Err: err}
}

// PanicError is the fault produced when a stage panics.
type PanicError struct {
	Stage string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("check: stage %q panicked: %v", e.Stage, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
