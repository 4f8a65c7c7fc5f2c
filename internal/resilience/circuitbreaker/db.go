package circuitbreaker

import (
	"context"
	"database/sql"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker is a *sql.DB whose calls pass through a CircuitBreaker.
// It satisfies the Database interface of the postgres store and the pinger
// of the readiness check.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// NewDBCircuitBreaker guards db with DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig guards db with cfg.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

func (d *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return guard(d.cb, func() (*sql.Rows, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
}

func (d *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return guard(d.cb, func() (sql.Result, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext is not guarded: *sql.Row defers its error to Scan, after
// the breaker could have counted it.
func (d *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx opens a transaction through the breaker. Statements on the
// returned *sql.Tx are not guarded; a broken database shows up at the next
// guarded call.
func (d *DBCircuitBreaker) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return guard(d.cb, func() (*sql.Tx, error) {
		return d.db.BeginTx(ctx, opts)
	})
}

func (d *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := guard(d.cb, func() (struct{}, error) {
		return struct{}{}, d.db.PingContext(ctx)
	})
	return err
}

// State returns the breaker state for the health check.
func (d *DBCircuitBreaker) State() gobreaker.State {
	return d.cb.State()
}

func (d *DBCircuitBreaker) IsOpen() bool {
	return d.cb.IsOpen()
}

// DB returns the unguarded connection pool.
func (d *DBCircuitBreaker) DB() *sql.DB {
	return d.db
}
