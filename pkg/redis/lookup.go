package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// SetClient is the part of redis.UniversalClient the lookup needs.
type SetClient interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
}

// SetLookup answers existence questions from Redis sets. The scope names the
// set; the key is prefix+scope.
type SetLookup struct {
	client SetClient
	prefix string
}

func NewSetLookup(client SetClient, prefix string) *SetLookup {
	return &SetLookup{client: client, prefix: prefix}
}

// Exists reports whether value is a member of the set named by scope.
func (l *SetLookup) Exists(ctx context.Context, scope string, value any) (bool, error) {
	if scope == "" {
		return false, ErrEmptyScope
	}
	found, err := l.client.SIsMember(ctx, l.prefix+scope, member(value)).Result()
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}

// Add puts values into the set named by scope.
func (l *SetLookup) Add(ctx context.Context, scope string, values ...any) error {
	if scope == "" {
		return ErrEmptyScope
	}
	if len(values) == 0 {
		return nil
	}
	members := make([]any, len(values))
	for i, v := range values {
		members[i] = member(v)
	}
	if err := l.client.SAdd(ctx, l.prefix+scope, members...).Err(); err != nil {
		return errors.Join(ErrLookupFailed, err)
	}
	return nil
}

// member renders decoded JSON values the way they were written, so 42.0 is
// stored as "42".
func member(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
