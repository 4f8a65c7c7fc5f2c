package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pingableDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func getHealth(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

type fixedBreaker gobreaker.State

func (b fixedBreaker) State() gobreaker.State { return gobreaker.State(b) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		breaker    BreakerState
		wantCode   int
		wantStatus string
		wantDB     string
	}{
		{name: "database reachable", wantCode: http.StatusOK, wantStatus: "healthy", wantDB: "healthy"},
		{name: "ping fails", pingErr: sql.ErrConnDone, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy", wantDB: "unhealthy"},
		{name: "breaker half-open", breaker: fixedBreaker(gobreaker.StateHalfOpen), wantCode: http.StatusOK, wantStatus: "healthy", wantDB: "healthy"},
		{name: "breaker open", breaker: fixedBreaker(gobreaker.StateOpen), wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy", wantDB: "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := pingableDB(t)
			db.SetMaxOpenConns(10)
			mock.ExpectPing().WillReturnError(tt.pingErr)

			rec, body := getHealth(t, &HealthHandler{DB: db, Breaker: tt.breaker, Version: "1.4.0"})

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantDB, body.Checks["database"].Status)
			assert.Equal(t, "1.4.0", body.Version)
			_, err := time.Parse(time.RFC3339, body.Timestamp)
			assert.NoError(t, err)
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
			if tt.breaker == nil {
				assert.NotContains(t, body.Checks, "circuit_breaker")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDatabase(t *testing.T) {
	rec, body := getHealth(t, &HealthHandler{})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not configured", body.Checks["database"].Message)
}

func TestHealthHandler_PingErrorIsSanitized(t *testing.T) {
	db, mock := pingableDB(t)
	mock.ExpectPing().WillReturnError(errors.New("dial postgres://app:s3cret@db:5432/journal"))

	rec, body := getHealth(t, &HealthHandler{DB: db})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, body.Checks["database"].Message, "s3cret")
}

func TestHealthHandler_UnboundedPoolIsDegraded(t *testing.T) {
	db, mock := pingableDB(t)
	mock.ExpectPing()

	rec, body := getHealth(t, &HealthHandler{DB: db})

	assert.Equal(t, http.StatusOK, rec.Code, "degraded still serves")
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "degraded", body.Checks["database"].Status)
}

func TestPoolStatus(t *testing.T) {
	tests := []struct {
		name       string
		stats      sql.DBStats
		wantStatus string
		wantPct    any
	}{
		{name: "unbounded", stats: sql.DBStats{InUse: 3}, wantStatus: "degraded"},
		{name: "idle pool", stats: sql.DBStats{MaxOpenConnections: 25, Idle: 2}, wantStatus: "healthy", wantPct: float64(0)},
		{name: "half used", stats: sql.DBStats{MaxOpenConnections: 10, InUse: 5}, wantStatus: "healthy", wantPct: float64(50)},
		{name: "saturated", stats: sql.DBStats{MaxOpenConnections: 10, InUse: 8}, wantStatus: "degraded", wantPct: float64(80)},
		{name: "single connection busy", stats: sql.DBStats{MaxOpenConnections: 1, InUse: 1}, wantStatus: "degraded", wantPct: float64(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := poolStatus(tt.stats)

			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.stats.InUse, got.Details["in_use"])
			if tt.wantPct != nil {
				assert.InDelta(t, tt.wantPct, got.Details["utilization_percent"], 1e-9)
			} else {
				assert.NotContains(t, got.Details, "utilization_percent")
			}
		})
	}
}

func TestBreakerStatus(t *testing.T) {
	for state, want := range map[gobreaker.State]string{
		gobreaker.StateClosed:   "healthy",
		gobreaker.StateHalfOpen: "degraded",
		gobreaker.StateOpen:     "unhealthy",
	} {
		got := breakerStatus(state)
		assert.Equal(t, want, got.Status, state.String())
		assert.Equal(t, state.String(), got.Details["state"])
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		wantCode int
		wantBody string
	}{
		{name: "ready", db: pingFunc(func(context.Context) error { return nil }), wantCode: http.StatusOK, wantBody: "ready"},
		{name: "ping fails", db: pingFunc(func(context.Context) error { return gobreaker.ErrOpenState }), wantCode: http.StatusServiceUnavailable, wantBody: "database not ready\n"},
		{name: "not configured", wantCode: http.StatusServiceUnavailable, wantBody: "database not configured\n"},
		{
			name: "ping outlives check deadline",
			db: pingFunc(func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			}),
			wantCode: http.StatusServiceUnavailable,
			wantBody: "database not ready\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			(&ReadyHandler{DB: tt.db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
