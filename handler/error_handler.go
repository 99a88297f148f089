package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
	"github.com/dmitrymomot/fieldcheck/pkg/logger"
	"github.com/dmitrymomot/fieldcheck/pkg/requestid"
)

// classify maps errors raised while decoding or checking a request onto the
// errors the JSON renderer understands.
func classify(err error) error {
	var verrs check.ValidationErrors
	var httpErr HTTPError
	switch {
	case errors.As(err, &verrs), errors.As(err, &httpErr):
		return err
	case errors.Is(err, check.ErrBodyTooLarge):
		return ErrRequestEntityTooLarge
	case errors.Is(err, check.ErrFailedToParseBody):
		return ErrBadRequest
	default:
		return err
	}
}

func logLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusUnprocessableEntity:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// NewErrorHandler renders errors as JSON and logs them with the request id:
// server errors at error level, validation failures at debug level, other
// client errors at warn level.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		r := ctx.Request()
		resp := JSONError(classify(err)).(*jsonResponse)

		log.LogAttrs(r.Context(), logLevel(resp.status), "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", resp.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}

// FaultHandler adapts an ErrorHandler to the check package, for chains used as
// plain middleware.
func FaultHandler(h ErrorHandler) check.FaultHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		h(NewContext(w, r), err)
	}
}
