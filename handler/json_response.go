package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/fieldcheck/pkg/check"
)

// JSONResponse is the envelope of every JSON response.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details maps each invalid param to its
// messages; Errors lists the failures in the order they were found.
type ErrorDetail struct {
	Code    string                  `json:"code,omitempty"`
	Message string                  `json:"message,omitempty"`
	Details map[string][]string     `json:"details,omitempty"`
	Errors  []check.ValidationError `json:"errors,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON responds 200 with v as data. An error value is rendered like JSONError.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK}
	switch val := v.(type) {
	case JSONResponse:
		r.body = val
	case error:
		r.status = http.StatusInternalServerError
		r.body.Error = errorToDetail(val, &r.status)
	default:
		r.body.Data = v
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err with the status that matches it: the code of an
// HTTPError, 422 for validation errors, 500 otherwise.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}
	r.body.Error = errorToDetail(err, &r.status)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorToDetail(err error, status *int) *ErrorDetail {
	var verrs check.ValidationErrors
	if errors.As(err, &verrs) {
		*status = http.StatusUnprocessableEntity
		return &ErrorDetail{
			Code:    ErrUnprocessableEntity.Key,
			Message: "Validation failed",
			Details: verrs.Details(),
			Errors:  verrs,
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		*status = httpErr.Code
		return &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	*status = http.StatusInternalServerError
	return &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
