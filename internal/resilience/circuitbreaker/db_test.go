package circuitbreaker

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedDB(t *testing.T, cfg Config) (*DBCircuitBreaker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBCircuitBreakerWithConfig(db, cfg), mock
}

func TestNewDBCircuitBreaker(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	guarded := NewDBCircuitBreaker(db)

	assert.Same(t, db, guarded.DB())
	assert.Equal(t, "database", guarded.cb.Name())
	assert.Equal(t, gobreaker.StateClosed, guarded.State())
}

func TestDBCircuitBreaker_QueryContext(t *testing.T) {
	guarded, mock := newGuardedDB(t, testConfig("query"))

	mock.ExpectQuery(`SELECT isbn, title FROM books WHERE isbn = \$1`).
		WithArgs("9788936434267").
		WillReturnRows(sqlmock.NewRows([]string{"isbn", "title"}).AddRow("9788936434267", "The Vegetarian"))

	rows, err := guarded.QueryContext(context.Background(), "SELECT isbn, title FROM books WHERE isbn = $1", "9788936434267")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var isbn, title string
	require.NoError(t, rows.Scan(&isbn, &title))
	assert.Equal(t, "The Vegetarian", title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCircuitBreaker_ExecContext(t *testing.T) {
	guarded, mock := newGuardedDB(t, testConfig("exec"))

	mock.ExpectExec(`UPDATE posts SET deleted_at`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := guarded.ExecContext(context.Background(), "UPDATE posts SET deleted_at = now() WHERE id = $1", int64(7))
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDBCircuitBreaker_OpensAfterFailures(t *testing.T) {
	guarded, mock := newGuardedDB(t, testConfig("opens"))

	for range 3 {
		mock.ExpectQuery(`SELECT`).WillReturnError(errDown)
		_, err := guarded.QueryContext(context.Background(), "SELECT 1")
		require.ErrorIs(t, err, errDown)
	}
	require.True(t, guarded.IsOpen())

	_, err := guarded.QueryContext(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	_, err = guarded.ExecContext(context.Background(), "DELETE FROM posts")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.ErrorIs(t, guarded.PingContext(context.Background()), gobreaker.ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet(), "open breaker never reaches the database")
}

func TestDBCircuitBreaker_BeginTx(t *testing.T) {
	guarded, mock := newGuardedDB(t, testConfig("tx"))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO authors`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := guarded.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(context.Background(), "INSERT INTO authors (name) VALUES ($1)", "Han Kang")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCircuitBreaker_BeginTxOpenCircuit(t *testing.T) {
	guarded, mock := newGuardedDB(t, testConfig("tx-open"))

	for range 3 {
		mock.ExpectBegin().WillReturnError(errDown)
		_, err := guarded.BeginTx(context.Background(), nil)
		require.Error(t, err)
	}

	_, err := guarded.BeginTx(context.Background(), nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestDBCircuitBreaker_QueryRowContextUnguarded(t *testing.T) {
	guarded, mock := newGuardedDB(t, testConfig("row"))

	for range 3 {
		mock.ExpectQuery(`SELECT`).WillReturnError(errDown)
		_, _ = guarded.QueryContext(context.Background(), "SELECT 1")
	}
	require.True(t, guarded.IsOpen())

	mock.ExpectQuery(`SELECT name FROM authors`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Han Kang"))

	var name string
	err := guarded.QueryRowContext(context.Background(), "SELECT name FROM authors WHERE id = $1", 1).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Han Kang", name)
}

func TestDBCircuitBreaker_PingContext(t *testing.T) {
	guarded, mock := newGuardedDB(t, testConfig("ping"))

	mock.ExpectPing()
	assert.NoError(t, guarded.PingContext(context.Background()))

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)
	assert.ErrorIs(t, guarded.PingContext(context.Background()), sql.ErrConnDone)
}
