package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repo code runs pooled or inside a transaction.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store bundles the repositories над одним соединением (pool или tx).
type Store interface {
	Todos() TodoRepo
	Users() UserRepo
	Assignments() AssignmentRepo
	Events() EventRepo

	// WithinTx runs fn with a Store scoped to one transaction. Commit on nil,
	// rollback on error. Calling WithinTx on an already transactional Store
	// reuses the ambient transaction.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

// PGStore implements Store with Postgres.
type PGStore struct {
	pool *pgxpool.Pool // nil when tx-scoped
	db   DB
}

// NewPGStore returns a pool-backed PGStore.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, db: pool}
}

func (s *PGStore) Todos() TodoRepo             { return &PGTodoRepo{db: s.db} }
func (s *PGStore) Users() UserRepo             { return &PGUserRepo{db: s.db} }
func (s *PGStore) Assignments() AssignmentRepo { return &PGAssignmentRepo{db: s.db} }
func (s *PGStore) Events() EventRepo           { return &PGEventRepo{db: s.db} }

func (s *PGStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&PGStore{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
