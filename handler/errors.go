package handler

import (
	"errors"
	"net/http"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrNoCheckedRequest indicates Context.Checked was used outside Wrap.
	ErrNoCheckedRequest = errors.New("handler: request was not decoded")
)

// HTTPError is an error with a status code and a machine readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest            = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound              = NewHTTPError(http.StatusNotFound, "not_found")
	ErrRequestEntityTooLarge = NewHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnprocessableEntity   = NewHTTPError(http.StatusUnprocessableEntity, "validation_error")
	ErrInternalServerError   = NewHTTPError(http.StatusInternalServerError, "internal_error")
)
