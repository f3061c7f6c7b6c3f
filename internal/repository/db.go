package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the query surface repositories need. Both *pgxpool.Pool and pgx.Tx
// satisfy it, so the same repository code runs inside and outside a
// transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all repositories over one DB handle.
type Repositories struct {
	Users   UserRepository
	Tickets TicketRepository
	Reviews ReviewRepository
	Follows FollowRepository
	Resets  PasswordResetRepository
}

// NewRepositories instantiates every repository over db.
func NewRepositories(db DB) Repositories {
	return Repositories{
		Users:   NewUserRepository(db),
		Tickets: NewTicketRepository(db),
		Reviews: NewReviewRepository(db),
		Follows: NewFollowRepository(db),
		Resets:  NewPasswordResetRepository(db),
	}
}

// TxManager runs a function against transaction-bound repositories. The
// transaction commits when fn returns nil and rolls back otherwise, so a
// failed composite write leaves nothing behind.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}

type pgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager builds a pgx-backed TxManager.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgxTxManager{pool: pool}
}

func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(r Repositories) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation, optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
