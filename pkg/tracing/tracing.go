// Package tracing records validation chains as OpenTelemetry spans. Each chain
// invocation is a span with one child span per pipeline stage.
package tracing

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

const instrumentationName = "github.com/dmitrymomot/fieldcheck/pkg/check"

type Config struct {
	Enabled     bool   `env:"TRACING_ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"fieldcheck"`
	PrettyPrint bool   `env:"TRACING_PRETTY" envDefault:"false"`
}

// Setup installs a global tracer provider exporting to w (stdout when nil) and
// returns its shutdown function.
func Setup(cfg Config, w io.Writer, log *slog.Logger) (func(context.Context) error, error) {
	if w == nil {
		w = os.Stdout
	}
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes("", semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	if log != nil {
		log.Info("tracing initialized", logger.Component("tracing"), slog.String("service", cfg.ServiceName))
	}
	return tp.Shutdown, nil
}

// Observer starts a span per chain invocation and per stage.
type Observer struct {
	tracer trace.Tracer
}

var _ check.Observer = (*Observer)(nil)

// NewObserver uses tp, or the global tracer provider when tp is nil.
func NewObserver(tp trace.TracerProvider) *Observer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Observer{tracer: tp.Tracer(instrumentationName)}
}

func (o *Observer) InvocationStarted(ctx context.Context, c *check.Context) context.Context {
	locations := make([]string, 0, len(c.Locations()))
	for _, l := range c.Locations() {
		locations = append(locations, string(l))
	}
	ctx, _ = o.tracer.Start(ctx, "check.chain",
		trace.WithAttributes(
			attribute.StringSlice("check.fields", c.Fields()),
			attribute.StringSlice("check.locations", locations),
			attribute.Int("check.validations", len(c.Validations())),
			attribute.Int("check.sanitizers", len(c.Sanitizers())),
		),
	)
	return ctx
}

func (o *Observer) StageStarted(ctx context.Context, stage string, index int) context.Context {
	ctx, _ = o.tracer.Start(ctx, "check.stage "+stage,
		trace.WithAttributes(
			attribute.String("check.stage", stage),
			attribute.Int("check.stage.index", index),
		),
	)
	return ctx
}

func (o *Observer) StageFinished(ctx context.Context, ev check.StageEvent) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("check.outcome", ev.Outcome.String()),
		attribute.Int("check.instances", ev.Instances),
		attribute.Int("check.errors", ev.Errors),
	)
	if ev.Err != nil {
		span.RecordError(ev.Err)
		span.SetStatus(codes.Error, ev.Err.Error())
	}
	span.End()
}

func (o *Observer) InvocationFinished(ctx context.Context, ev check.InvocationEvent) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("check.outcome", ev.Outcome.String()),
		attribute.Int("check.errors", len(ev.Errors)),
	)
	if len(ev.Errors) > 0 {
		params := make([]string, 0, len(ev.Errors))
		for _, e := range ev.Errors {
			params = append(params, e.Param)
		}
		span.SetAttributes(attribute.StringSlice("check.failed_params", params))
	}
	if ev.Err != nil {
		span.RecordError(ev.Err)
		span.SetStatus(codes.Error, ev.Err.Error())
	}
	span.End()
}
