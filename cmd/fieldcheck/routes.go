package main

import (
	"bytes"
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrymomot/fieldcheck/handler"
	"github.com/dmitrymomot/fieldcheck/pkg/check"
	"github.com/dmitrymomot/fieldcheck/pkg/httpserver"
	"github.com/dmitrymomot/fieldcheck/pkg/metrics"
	"github.com/dmitrymomot/fieldcheck/pkg/requestid"
)

//go:embed signup.yaml
var signupSchema []byte

type routerDeps struct {
	log         *slog.Logger
	executor    *check.Executor
	lookups     map[string]check.Lookup
	checks      map[string]httpserver.Check
	metrics     *metrics.Observer
	metricsPath string
	maxBodySize int64
	tracing     bool
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Age      *int64 `json:"age,omitempty"`
}

type searchRequest struct {
	Q     string `json:"q"`
	Limit int64  `json:"limit,string"`
	Tags  any    `json:"tags"`
}

func newRouter(d routerDeps) (http.Handler, error) {
	withExec := check.WithExecutor(d.executor)

	opts := []check.SchemaOption{check.WithChainOptions(withExec)}
	for name, l := range d.lookups {
		opts = append(opts, check.WithLookup(name, l))
	}
	signupChains, err := check.LoadSchema(bytes.NewReader(signupSchema), opts...)
	if err != nil {
		return nil, err
	}

	errs := handler.NewErrorHandler(d.log)
	bind := check.WithMaxBodySize(d.maxBodySize)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	if d.tracing {
		r.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "fieldcheck")
		})
	}
	r.Use(check.Middleware(handler.FaultHandler(errs), bind))

	r.Get("/livez", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(d.log, 2*time.Second, d.checks))
	if d.metrics != nil {
		r.Method(http.MethodGet, d.metricsPath, d.metrics.Handler())
	}

	r.Post("/signup", handler.Wrap(signup(d.lookups["sets"]),
		handler.WithChains[signupRequest](signupChains...),
		handler.WithErrorHandler[signupRequest](errs),
	))

	r.Get("/users/{id}", handler.Wrap(getUser,
		handler.WithChains[userRequest](
			check.Params("id").Trim().ToLower().IsUUID().WithMessage("Invalid user id").Apply(withExec),
		),
		handler.WithDecodeFrom[userRequest](check.LocationParams),
		handler.WithErrorHandler[userRequest](errs),
	))

	r.Get("/search", handler.Wrap(search,
		handler.WithChains[searchRequest](
			check.Query("q").Trim().Escape().NotEmpty().IsLength(1, 200).Apply(withExec),
			check.Query("limit").Optional().IsInt(check.IntBounds{Min: ptr(int64(1)), Max: ptr(int64(100))}).Apply(withExec),
			check.Query("tags").Optional().ToLower().Matches(`^[a-z0-9-]+$`).WithMessage("Invalid tag").Apply(withExec),
			check.Headers("Accept-Language").Optional().Matches(`^[a-zA-Z-]+`).Apply(withExec),
		),
		handler.WithDecodeFrom[searchRequest](check.LocationQuery),
		handler.WithErrorHandler[searchRequest](errs),
	))

	return r, nil
}

// signup registers the address in the lookup set so the next signup with the
// same email is rejected.
func signup(users check.Lookup) handler.HandlerFunc[signupRequest] {
	adder, _ := users.(interface {
		Add(ctx context.Context, scope string, values ...any) error
	})
	return func(ctx handler.Context, req signupRequest) handler.Response {
		if adder != nil {
			if err := adder.Add(ctx, "users.email", req.Email); err != nil {
				return handler.JSONError(err)
			}
		}
		return handler.JSON(map[string]any{
			"id":    uuid.NewString(),
			"email": req.Email,
			"name":  req.Name,
		}, handler.WithJSONStatus(http.StatusCreated))
	}
}

type userRequest struct {
	ID string `json:"id"`
}

func getUser(_ handler.Context, req userRequest) handler.Response {
	return handler.JSON(map[string]any{"id": req.ID})
}

func search(_ handler.Context, req searchRequest) handler.Response {
	return handler.JSON(map[string]any{
		"q":     req.Q,
		"limit": req.Limit,
		"tags":  req.Tags,
	})
}

// memoryLookup keeps sets in process memory when no backend is configured.
type memoryLookup struct {
	mu   sync.RWMutex
	sets map[string]map[string]bool
}

func newMemoryLookup() *memoryLookup {
	return &memoryLookup{sets: make(map[string]map[string]bool)}
}

func (m *memoryLookup) Exists(_ context.Context, scope string, value any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, _ := value.(string)
	return m.sets[scope][strings.ToLower(s)], nil
}

func (m *memoryLookup) Add(_ context.Context, scope string, values ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[scope] == nil {
		m.sets[scope] = make(map[string]bool)
	}
	for _, v := range values {
		s, _ := v.(string)
		m.sets[scope][strings.ToLower(s)] = true
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
