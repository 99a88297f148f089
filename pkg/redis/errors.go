package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("redis: failed to parse connection string")
	ErrRedisNotReady                = errors.New("redis: server did not become ready in time")
	ErrEmptyConnectionURL           = errors.New("redis: empty connection URL, set REDIS_URL")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck failed")
	ErrEmptyScope                   = errors.New("redis: empty lookup scope")
	ErrLookupFailed                 = errors.New("redis: lookup failed")
)
