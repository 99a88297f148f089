package check

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

// Executor drives chain invocations through the stages of a registry.
type Executor struct {
	registry *Registry
	observer Observer
	log      *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRegistry runs invocations through r instead of DefaultRegistry.
func WithRegistry(r *Registry) ExecutorOption {
	return func(e *Executor) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithObserver reports invocation and stage lifecycle to o.
func WithObserver(o Observer) ExecutorOption {
	return func(e *Executor) {
		if o != nil {
			e.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		registry: DefaultRegistry(),
		observer: NopObserver{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExecutor = NewExecutor()

// DefaultExecutor runs chains that were declared without WithExecutor.
func DefaultExecutor() *Executor {
	return defaultExecutor
}

// Run passes one invocation through every stage, in registry order, one at a time.
// Each stage receives exactly the instances returned by the stage before it.
//
// A stage that fails validation stops the invocation; its errors are appended to
// req and Run returns nil. A stage that faults stops the invocation and Run returns
// the fault unchanged without touching the accumulated errors.
func (e *Executor) Run(ctx context.Context, req *Request, c *Context) error {
	if req == nil {
		return ErrNilRequest
	}
	if c == nil {
		c = NewContext(nil, nil, "")
	}

	stages := e.registry.Stages()
	ctx = e.observer.InvocationStarted(ctx, c)
	started := time.Now()

	finish := func(outcome Outcome, errs []ValidationError, err error) {
		e.observer.InvocationFinished(ctx, InvocationEvent{
			Fields:    c.Fields(),
			Locations: c.Locations(),
			Outcome:   outcome,
			Stages:    len(stages),
			Errors:    errs,
			Err:       err,
			Duration:  time.Since(started),
		})
	}

	var instances []FieldInstance
	for i, stage := range stages {
		stageCtx := e.observer.StageStarted(ctx, stage.Name, i)
		stageStarted := time.Now()

		res := runStage(stageCtx, stage, req, c, instances)

		e.observer.StageFinished(stageCtx, StageEvent{
			Stage:     stage.Name,
			Index:     i,
			Outcome:   res.outcome,
			Duration:  time.Since(stageStarted),
			Instances: len(res.instances),
			Errors:    len(res.errors),
			Err:       res.err,
		})

		switch res.outcome {
		case OutcomeFailed:
			req.appendValidationErrors(res.errors)
			e.log.LogAttrs(ctx, slog.LevelDebug, "validation chain failed",
				logger.Fields(c.fields),
				logger.Stage(stage.Name),
				slog.Int("errors", len(res.errors)),
				logger.Component("check"),
			)
			finish(OutcomeFailed, res.errors, nil)
			return nil
		case OutcomeFaulted:
			finish(OutcomeFaulted, nil, res.err)
			return res.err
		default:
			instances = res.instances
		}
	}

	finish(OutcomeOK, nil, nil)
	return nil
}

// runStage builds a fresh runner and converts a panic into a fault.
func runStage(ctx context.Context, stage Stage, req *Request, c *Context, prev []FieldInstance) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = Faulted(&PanicError{Stage: stage.Name, Value: v})
		}
	}()

	if stage.New == nil {
		return Faulted(ErrNilRunner)
	}
	runner := stage.New()
	if runner == nil {
		return Faulted(ErrNilRunner)
	}
	res = runner.Run(ctx, req, c, prev)
	if res.outcome == OutcomeFaulted && res.err == nil {
		res.err = ErrNilFault
	}
	return res
}
