package logger

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Stage records a pipeline stage name under the key "stage".
func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

// Location records a request location (body, query, ...) under the key "location".
func Location(loc string) slog.Attr {
	return slog.String("location", loc)
}

// Fields records declared field paths, comma separated, under the key "fields".
func Fields(fields []string) slog.Attr {
	return slog.String("fields", strings.Join(fields, ","))
}

// Param records a concrete field path under the key "param".
func Param(path string) slog.Attr {
	return slog.String("param", path)
}

// Outcome records the outcome of a chain invocation under the key "outcome".
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

// Handler records the HTTP handler or route name under the key "handler".
func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}
