package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"book-journal/internal/repository"
)

// Querier is the subset of *sql.DB, *sql.Tx and circuitbreaker.DBCircuitBreaker
// the repositories run statements through.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Database is a Querier that can also open transactions.
type Database interface {
	Querier
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Store hands out repositories bound either to the database or to a transaction.
type Store struct {
	db Database
}

var _ repository.Transactor = (*Store)(nil)

// NewStore creates a Store over db (a *sql.DB or a circuit-breaker wrapped one).
func NewStore(db Database) *Store {
	return &Store{db: db}
}

// Repos returns repositories that run outside any transaction.
func (s *Store) Repos() repository.Repos {
	return reposFor(s.db)
}

// WithinTx runs fn in a transaction. It commits when fn returns nil and rolls
// back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("WithinTx: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("WithinTx: Commit: %w", err)
	}
	return nil
}

func reposFor(q Querier) repository.Repos {
	return repository.Repos{
		Posts:    NewPostRepo(q),
		Books:    NewBookRepo(q),
		Authors:  NewAuthorRepo(q),
		Users:    NewUserRepo(q),
		Profiles: NewProfileRepo(q),
	}
}
