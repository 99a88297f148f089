package pg

import "errors"

var (
	ErrFailedToOpenDBConnection = errors.New("pg: failed to open db connection")
	ErrEmptyConnectionString    = errors.New("pg: empty connection string, set PG_CONN_URL")
	ErrHealthcheckFailed        = errors.New("pg: healthcheck failed")
	ErrFailedToParseDBConfig    = errors.New("pg: failed to parse db config")
	ErrInvalidScope             = errors.New("pg: lookup scope must be table.column or schema.table.column")
	ErrScopeNotAllowed          = errors.New("pg: lookup scope not allowed")
	ErrLookupFailed             = errors.New("pg: lookup query failed")
)
