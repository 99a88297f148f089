package check

import "context"

// Runner is one stage of the validation pipeline. It receives the instances
// produced by the previous stage (nil for the first stage) and returns the next
// set, a validation failure or a fault. Runners must not modify the Context.
type Runner interface {
	Run(ctx context.Context, req *Request, c *Context, prev []FieldInstance) Result
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, req *Request, c *Context, prev []FieldInstance) Result

func (f RunnerFunc) Run(ctx context.Context, req *Request, c *Context, prev []FieldInstance) Result {
	return f(ctx, req, c, prev)
}

// Outcome tags a Result.
type Outcome uint8

const (
	OutcomeOK Outcome = iota
	OutcomeFailed
	OutcomeFaulted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFailed:
		return "failed"
	case OutcomeFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Result is what a stage reports. The zero value is OK with no instances.
type Result struct {
	outcome   Outcome
	instances []FieldInstance
	errors    []ValidationError
	err       error
}

// OK passes instances on to the next stage.
func OK(instances []FieldInstance) Result {
	return Result{outcome: OutcomeOK, instances: instances}
}

// Failed stops the invocation and records errs on the request.
func Failed(errs ...ValidationError) Result {
	return Result{outcome: OutcomeFailed, errors: errs}
}

// Faulted stops the invocation and hands err to the caller unchanged.
// A nil err is replaced with ErrNilFault.
func Faulted(err error) Result {
	if err == nil {
		err = ErrNilFault
	}
	return Result{outcome: OutcomeFaulted, err: err}
}

func (r Result) Outcome() Outcome { return r.outcome }
func (r Result) Instances() []FieldInstance { return r.instances }
func (r Result) Errors() []ValidationError { return r.errors }
func (r Result) Err() error { return r.err }
