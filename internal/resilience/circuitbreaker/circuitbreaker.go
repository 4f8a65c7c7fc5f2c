// Package circuitbreaker fails database calls fast while PostgreSQL is
// unreachable, using github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"book-journal/internal/observability/metrics"
)

// Config tunes when the breaker opens and how it recovers.
type Config struct {
	Name string

	// HalfOpenRequests is how many trial calls pass while half-open.
	HalfOpenRequests uint32

	// Window clears the closed-state counts periodically. Zero never clears.
	Window time.Duration

	// OpenFor is how long the breaker rejects calls before a trial.
	OpenFor time.Duration

	// TripRatio is the failure share at which the breaker opens, once
	// MinRequests calls were counted.
	TripRatio   float64
	MinRequests uint32
}

// DBConfig opens after five straight failures and retries after 30 seconds.
func DBConfig() Config {
	return Config{
		Name:             "database",
		HalfOpenRequests: 3,
		Window:           time.Minute,
		OpenFor:          30 * time.Second,
		TripRatio:        1.0,
		MinRequests:      5,
	}
}

func (c Config) readyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < c.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.TripRatio
}

// isSuccessful reports whether err leaves the database's health untouched.
// A missing row or a caller that gave up says nothing about the database.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, context.Canceled)
}

// CircuitBreaker is a named gobreaker whose state changes are logged and
// exported as the circuit_breaker_state gauge.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a closed breaker.
func New(cfg Config) *CircuitBreaker {
	metrics.RecordCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{
		name: cfg.Name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         cfg.Name,
			MaxRequests:  cfg.HalfOpenRequests,
			Interval:     cfg.Window,
			Timeout:      cfg.OpenFor,
			ReadyToTrip:  cfg.readyToTrip,
			IsSuccessful: isSuccessful,
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
				metrics.RecordCircuitBreakerState(name, int(to))
			},
		}),
	}
}

// guard runs fn through cb. While the breaker is open fn is not called and
// gobreaker.ErrOpenState is returned.
func guard[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.breaker.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if out == nil {
		var zero T
		return zero, nil
	}
	return out.(T), nil
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the breaker's name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == gobreaker.StateOpen
}
