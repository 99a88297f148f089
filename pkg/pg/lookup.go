package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of *pgxpool.Pool and pgx.Tx the lookup needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Lookup answers existence questions against a column. The scope names the
// column as "table.column" or "schema.table.column"; identifiers are quoted.
type Lookup struct {
	db      Querier
	allowed map[string]bool

	mu      sync.RWMutex
	queries map[string]string
}

// NewLookup creates a lookup. When scopes are given, any other scope is rejected.
func NewLookup(db Querier, scopes ...string) *Lookup {
	l := &Lookup{db: db, queries: make(map[string]string)}
	if len(scopes) > 0 {
		l.allowed = make(map[string]bool, len(scopes))
		for _, s := range scopes {
			if s = strings.TrimSpace(s); s != "" {
				l.allowed[s] = true
			}
		}
	}
	return l
}

// Exists reports whether value is present in the column named by scope.
func (l *Lookup) Exists(ctx context.Context, scope string, value any) (bool, error) {
	query, err := l.query(scope)
	if err != nil {
		return false, err
	}
	var found bool
	if err := l.db.QueryRow(ctx, query, value).Scan(&found); err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}

func (l *Lookup) query(scope string) (string, error) {
	if l.allowed != nil && !l.allowed[scope] {
		return "", fmt.Errorf("%w: %q", ErrScopeNotAllowed, scope)
	}

	l.mu.RLock()
	q, ok := l.queries[scope]
	l.mu.RUnlock()
	if ok {
		return q, nil
	}

	q, err := existsQuery(scope)
	if err != nil {
		return "", err
	}
	l.mu.Lock()
	l.queries[scope] = q
	l.mu.Unlock()
	return q, nil
}

func existsQuery(scope string) (string, error) {
	parts := strings.Split(scope, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidScope, scope)
		}
	}
	table := pgx.Identifier(parts[:len(parts)-1]).Sanitize()
	column := pgx.Identifier{parts[len(parts)-1]}.Sanitize()
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", table, column), nil
}
