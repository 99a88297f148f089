package fieldpath

import "errors"

var (
	ErrInvalidPath        = errors.New("invalid field path")
	ErrWildcardNotAllowed = errors.New("wildcard is not allowed in a concrete path")
	ErrTypeMismatch       = errors.New("path does not match data shape")
)
