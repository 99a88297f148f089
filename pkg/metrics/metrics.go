// Package metrics exports Prometheus metrics for validation chains. Observer
// plugs into a check.Executor; Handler serves the registry.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
)

type Config struct {
	Enabled   bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"fieldcheck"`
	Path      string `env:"METRICS_PATH" envDefault:"/metrics"`

	// StageDurationBuckets in seconds. Stages are usually in-memory, so the
	// defaults start at 10µs; lookups against Redis or Postgres land higher.
	StageDurationBuckets []float64 `env:"METRICS_STAGE_BUCKETS" envSeparator:","`
}

var defaultStageBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5}

// Observer records chain and stage outcomes.
type Observer struct {
	registry *prometheus.Registry

	invocations      *prometheus.CounterVec
	invocationTime   prometheus.Histogram
	stageDuration    *prometheus.HistogramVec
	validationErrors *prometheus.CounterVec
	inFlight         prometheus.Gauge
}

var _ check.Observer = (*Observer)(nil)

// New registers the metrics in registry, or in a fresh registry when it is nil.
func New(cfg Config, registry *prometheus.Registry) *Observer {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "fieldcheck"
	}
	buckets := cfg.StageDurationBuckets
	if len(buckets) == 0 {
		buckets = defaultStageBuckets
	}

	o := &Observer{
		registry: registry,
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "chain",
			Name:      "invocations_total",
			Help:      "Chain invocations by outcome (ok, failed, faulted).",
		}, []string{"outcome"}),
		invocationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "chain",
			Name:      "duration_seconds",
			Help:      "Duration of chain invocations.",
			Buckets:   buckets,
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "stage",
			Name:      "duration_seconds",
			Help:      "Duration of pipeline stages by stage and outcome.",
			Buckets:   buckets,
		}, []string{"stage", "outcome"}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "chain",
			Name:      "validation_errors_total",
			Help:      "Validation errors recorded, by request location.",
		}, []string{"location"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "chain",
			Name:      "in_flight",
			Help:      "Chain invocations currently running.",
		}),
	}

	registry.MustRegister(o.invocations, o.invocationTime, o.stageDuration, o.validationErrors, o.inFlight)
	return o
}

func (o *Observer) InvocationStarted(ctx context.Context, _ *check.Context) context.Context {
	o.inFlight.Inc()
	return ctx
}

func (o *Observer) StageStarted(ctx context.Context, _ string, _ int) context.Context {
	return ctx
}

func (o *Observer) StageFinished(_ context.Context, ev check.StageEvent) {
	o.stageDuration.WithLabelValues(ev.Stage, ev.Outcome.String()).Observe(ev.Duration.Seconds())
}

func (o *Observer) InvocationFinished(_ context.Context, ev check.InvocationEvent) {
	o.inFlight.Dec()
	o.invocations.WithLabelValues(ev.Outcome.String()).Inc()
	o.invocationTime.Observe(ev.Duration.Seconds())
	for _, e := range ev.Errors {
		o.validationErrors.WithLabelValues(string(e.Location)).Inc()
	}
}

// Invocations returns the invocation counter for outcome.
func (o *Observer) Invocations(outcome string) prometheus.Counter {
	return o.invocations.WithLabelValues(outcome)
}

// ValidationErrors returns the validation error counter for location.
func (o *Observer) ValidationErrors(location string) prometheus.Counter {
	return o.validationErrors.WithLabelValues(location)
}

func (o *Observer) InFlight() prometheus.Gauge {
	return o.inFlight
}

// Registry returns the registry the metrics live in.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
		Timeout:           10 * time.Second,
	})
}
