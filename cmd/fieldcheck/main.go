package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
	"github.com/dmitrymomot/fieldcheck/pkg/config"
	"github.com/dmitrymomot/fieldcheck/pkg/httpserver"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/metrics"
	"github.com/dmitrymomot/fieldcheck/pkg/pg"
	"github.com/dmitrymomot/fieldcheck/pkg/redis"
	"github.com/dmitrymomot/fieldcheck/pkg/requestid"
	"github.com/dmitrymomot/fieldcheck/pkg/tracing"
)

type appConfig struct {
	Log     logger.Config
	HTTP    httpserver.Config
	PG      pg.Config
	Redis   redis.Config
	Metrics metrics.Config
	Tracing tracing.Config

	MaxBodySize int64 `env:"MAX_BODY_SIZE" envDefault:"1048576"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fieldcheck stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load[appConfig](config.WithEnvFiles(".env"))
	if err != nil {
		return err
	}

	log, err := logger.FromConfig(cfg.Log, logger.WithContextExtractors(requestid.LoggerExtractor()))
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	var observers []check.Observer
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Setup(cfg.Tracing, os.Stdout, log)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Error("tracing shutdown", logger.Error(err))
			}
		}()
		observers = append(observers, tracing.NewObserver(nil))
	}

	var mx *metrics.Observer
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		mx = metrics.New(cfg.Metrics, reg)
		observers = append(observers, mx)
	}

	deps, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	exec := check.NewExecutor(
		check.WithObserver(check.Observers(observers...)),
		check.WithLogger(log),
	)

	router, err := newRouter(routerDeps{
		log:         log,
		executor:    exec,
		lookups:     deps.lookups,
		checks:      deps.checks,
		metrics:     mx,
		metricsPath: cfg.Metrics.Path,
		maxBodySize: cfg.MaxBodySize,
		tracing:     cfg.Tracing.Enabled,
	})
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

type dependencies struct {
	lookups map[string]check.Lookup
	checks  map[string]httpserver.Check
	closers []func()
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// connect opens the optional lookup backends. The "users" lookup prefers
// Postgres, then Redis, and falls back to an in-memory set.
func connect(ctx context.Context, cfg appConfig, log *slog.Logger) (*dependencies, error) {
	deps := &dependencies{
		lookups: make(map[string]check.Lookup),
		checks:  make(map[string]httpserver.Check),
	}

	if cfg.PG.Enabled() {
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, errors.Join(errors.New("postgres"), err)
		}
		deps.closers = append(deps.closers, pool.Close)
		deps.checks["postgres"] = pg.Healthcheck(pool)
		deps.lookups["users"] = pg.NewLookup(pool, cfg.PG.LookupScopes...)
		log.Info("postgres lookups enabled", logger.Component("pg"))
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			deps.close()
			return nil, errors.Join(errors.New("redis"), err)
		}
		deps.closers = append(deps.closers, func() { _ = client.Close() })
		deps.checks["redis"] = redis.Healthcheck(client)
		deps.lookups["sets"] = redis.NewSetLookup(client, cfg.Redis.KeyPrefix)
		if _, ok := deps.lookups["users"]; !ok {
			deps.lookups["users"] = deps.lookups["sets"]
		}
		log.Info("redis lookups enabled", logger.Component("redis"))
	}

	if _, ok := deps.lookups["users"]; !ok {
		deps.lookups["users"] = newMemoryLookup()
		log.Warn("no lookup backend configured, using in-memory users", logger.Component("check"))
	}
	if _, ok := deps.lookups["sets"]; !ok {
		deps.lookups["sets"] = deps.lookups["users"]
	}
	return deps, nil
}
