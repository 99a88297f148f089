// Package check extracts, sanitizes and validates request fields through
// declarative chains.
//
// A chain names the fields to read and the locations to read them from, then
// declares sanitizers and validators with a fluent API:
//
//	signup := check.All(
//		check.Body("email").Trim().NormalizeEmail().IsEmail().WithMessage("Enter a valid email"),
//		check.Body("password").IsLength(8, -1),
//		check.Query("ref").Optional().IsUUID(),
//	)
//
//	r.With(signup.Handler).Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//		req, _ := check.RequestFrom(r.Context())
//		if err := check.ValidationResult(req).Err(); err != nil {
//			// respond 422
//		}
//	})
//
// # Pipeline
//
// Every invocation of a chain builds a Context from its declaration and passes it
// through the stages of a Registry, strictly one after another:
//
//	select_fields → sanitize → remove_optionals → ensure_instance → persist_back → validate
//
// Each stage receives the field instances returned by the previous one and returns
// a Result: OK with the next instances, Failed with validation errors, or Faulted
// with an unexpected error. Failed stops the invocation and appends the errors to
// the Request, where they accumulate across every chain run on it; the caller
// continues normally. Faulted stops the invocation and the error is returned (or
// passed to next) unchanged, and nothing is recorded.
//
// The default registry is process-wide. Replace its stages for tests or reduced
// pipelines, and restore it with Reset; or give an Executor its own registry with
// WithRegistry.
//
// # Observability
//
// Executors accept an Observer (WithObserver) notified when invocations and stages
// start and finish. The metrics and tracing packages provide Prometheus and
// OpenTelemetry implementations.
//
// # Schemas
//
// LoadSchema builds chains from a YAML document so rules can live in
// configuration. Custom rules, sanitizers and lookups are registered with
// WithRule, WithSanitizer and WithLookup.
package check
