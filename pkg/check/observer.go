package check

import (
	"context"
	"time"
)

// StageEvent reports one finished stage.
type StageEvent struct {
	Stage     string
	Index     int
	Outcome   Outcome
	Duration  time.Duration
	Instances int
	Errors    int
	Err       error
}

// InvocationEvent reports one finished chain invocation.
type InvocationEvent struct {
	Fields    []string
	Locations []Location
	Outcome   Outcome
	Stages    int
	Errors    []ValidationError
	Err       error
	Duration  time.Duration
}

// Observer receives pipeline lifecycle callbacks. The Started hooks may return a
// derived context (for example one carrying a span); it is passed to the stage and
// to the matching Finished hook.
type Observer interface {
	InvocationStarted(ctx context.Context, c *Context) context.Context
	StageStarted(ctx context.Context, stage string, index int) context.Context
	StageFinished(ctx context.Context, ev StageEvent)
	InvocationFinished(ctx context.Context, ev InvocationEvent)
}

// NopObserver ignores every callback. Embed it to implement only some hooks.
type NopObserver struct{}

func (NopObserver) InvocationStarted(ctx context.Context, _ *Context) context.Context { return ctx }
func (NopObserver) StageStarted(ctx context.Context, _ string, _ int) context.Context { return ctx }
func (NopObserver) StageFinished(context.Context, StageEvent) {}
func (NopObserver) InvocationFinished(context.Context, InvocationEvent) {}

type multiObserver []Observer

// Observers fans callbacks out to several observers in order. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	clean := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			clean = append(clean, o)
		}
	}
	if len(clean) == 1 {
		return clean[0]
	}
	return clean
}

func (m multiObserver) InvocationStarted(ctx context.Context, c *Context) context.Context {
	for _, o := range m {
		ctx = o.InvocationStarted(ctx, c)
	}
	return ctx
}

func (m multiObserver) StageStarted(ctx context.Context, stage string, index int) context.Context {
	for _, o := range m {
		ctx = o.StageStarted(ctx, stage, index)
	}
	return ctx
}

func (m multiObserver) StageFinished(ctx context.Context, ev StageEvent) {
	for _, o := range m {
		o.StageFinished(ctx, ev)
	}
}

func (m multiObserver) InvocationFinished(ctx context.Context, ev InvocationEvent) {
	for _, o := range m {
		o.InvocationFinished(ctx, ev)
	}
}
