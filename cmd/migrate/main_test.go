package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calls struct {
	up, down, version int
}

func fakeMigrator(t *testing.T, c *calls) migrator {
	t.Helper()
	return migrator{
		open: func(context.Context) (*sql.DB, error) {
			database, mock, err := sqlmock.New()
			require.NoError(t, err)
			mock.ExpectClose()
			return database, nil
		},
		up:   func(*sql.DB) error { c.up++; return nil },
		down: func(*sql.DB) error { c.down++; return nil },
		version: func(*sql.DB) (uint, bool, error) {
			c.version++
			return 2, false, nil
		},
	}
}

func run(t *testing.T, m migrator, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate_Up(t *testing.T) {
	var c calls
	_, err := run(t, fakeMigrator(t, &c), "up")
	require.NoError(t, err)
	assert.Equal(t, calls{up: 1}, c)
}

func TestMigrate_Down(t *testing.T) {
	var c calls
	_, err := run(t, fakeMigrator(t, &c), "down")
	require.NoError(t, err)
	assert.Equal(t, calls{down: 1}, c)
}

func TestMigrate_Version(t *testing.T) {
	var c calls
	out, err := run(t, fakeMigrator(t, &c), "version")
	require.NoError(t, err)
	assert.Equal(t, "version 2 (dirty: false)\n", out)
}

func TestMigrate_OpenError(t *testing.T) {
	var c calls
	m := fakeMigrator(t, &c)
	m.open = func(context.Context) (*sql.DB, error) { return nil, errors.New("connection refused") }

	_, err := run(t, m, "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open database")
	assert.Zero(t, c.up)
}

func TestMigrate_RejectsArgs(t *testing.T) {
	var c calls
	_, err := run(t, fakeMigrator(t, &c), "up", "extra")
	assert.Error(t, err)
	assert.Zero(t, c.up)
}

func TestMigrate_UpError(t *testing.T) {
	var c calls
	m := fakeMigrator(t, &c)
	m.up = func(*sql.DB) error { return errors.New("dirty database version 2") }

	_, err := run(t, m, "up")
	assert.EqualError(t, err, "dirty database version 2")
}
