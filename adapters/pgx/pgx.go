// Package pgx persists accounts and the active session in PostgreSQL. Both
// live as JSON documents in a two-row key-value table, so each write replaces
// one key atomically.
package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sorenlabs/soren/core"
)

const (
	keyAccounts = "registeredUsers"
	keySession  = "currentUser"
)

// Querier is the slice of pgxpool.Pool the store needs. It is implemented by
// *pgxpool.Pool and pgxmock.PgxPoolIface.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool Querier
}

var _ core.AccountStore = (*Store)(nil)

func New(pool Querier) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool for the given DSN and wraps it in a Store.
func Connect(ctx context.Context, dsn string) (*Store, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return New(pool), pool, nil
}
