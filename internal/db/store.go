package db

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

// Store exposes the generated queries plus a transaction runner. Services
// depend on this interface so tests can substitute an in-memory fake.
type Store interface {
	dbgen.Querier
	ExecTx(ctx context.Context, fn func(q dbgen.Querier) error) error
}

// PoolStore is the pgxpool backed Store used in production.
type PoolStore struct {
	*dbgen.Queries
	Pool *pgxpool.Pool
}

// NewStore wraps the pool with generated queries.
func NewStore(pool *pgxpool.Pool) *PoolStore {
	return &PoolStore{Queries: dbgen.New(pool), Pool: pool}
}

// ExecTx runs fn inside a single transaction. The transaction is rolled back
// when fn returns an error and committed otherwise.
func (s *PoolStore) ExecTx(ctx context.Context, fn func(q dbgen.Querier) error) error {
	if s == nil || s.Pool == nil {
		return errors.New("db store not configured")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// IsUniqueViolation reports whether err is a postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

// IsNotFound reports whether err signals an absent row.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsForeignKeyViolation reports whether err is a postgres foreign key failure.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	return false
}
