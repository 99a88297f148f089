// Package httpserver runs the validation service's HTTP listener with graceful
// shutdown and exposes liveness and readiness probes.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	r.Get("/livez", httpserver.Liveness())
//	r.Get("/readyz", httpserver.Readiness(log, time.Second, map[string]httpserver.Check{
//		"postgres": func(ctx context.Context) error { return pg.Healthcheck(ctx, pool) },
//	}))
//	err := srv.Run(ctx, r) // returns when ctx is cancelled
//
// Run wraps listen errors with ErrStart and Shutdown wraps drain errors with
// ErrShutdown.
package httpserver
