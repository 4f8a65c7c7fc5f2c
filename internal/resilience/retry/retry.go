// Package retry re-runs database work that failed transiently: connecting
// at startup and write transactions that lost a serialization race.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	// Name labels the operation in log lines.
	Name string

	// MaxAttempts counts the first try.
	MaxAttempts int

	BaseDelay time.Duration
	MaxDelay  time.Duration
	Factor    float64

	// Jitter is the fraction of each delay added at random, 0 to 1.
	Jitter float64
}

// ConnectConfig waits for a database that starts after the API.
func ConnectConfig() Policy {
	return Policy{
		Name:        "db_connect",
		MaxAttempts: 6,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
		Factor:      2,
		Jitter:      0.1,
	}
}

// TxConfig re-runs a write transaction after a serialization failure or
// deadlock. Delays stay short because a request is waiting.
func TxConfig() Policy {
	return Policy{
		Name:        "write_tx",
		MaxAttempts: 3,
		BaseDelay:   20 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
		Factor:      2,
		Jitter:      0.2,
	}
}

// Delay returns the pause before retry number n (1-based), without jitter.
func (p Policy) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	d := float64(p.BaseDelay) * math.Pow(factor, float64(n-1))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// WithBackoff calls fn until it succeeds, returns an error IsRetryable
// rejects, or p.MaxAttempts is used up. Waiting between attempts stops early
// when ctx is done.
func WithBackoff(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(1, p.MaxAttempts)
	logger := slog.Default().With(slog.String("op", p.Name))

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				logger.Info("succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("%s: gave up after %d attempts: %w", p.Name, attempts, err)
		}

		wait := withJitter(p.Delay(attempt), p.Jitter)
		logger.Warn("transient failure, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		if err := sleep(ctx, wait); err != nil {
			return fmt.Errorf("%s: retry aborted: %w", p.Name, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// transientSQLStates are PostgreSQL codes worth another attempt. Class 08
// (connection exception) is matched separately.
var transientSQLStates = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"57P03": true, // cannot_connect_now
	"53300": true, // too_many_connections
}

// IsRetryable reports whether err is a transient database or network failure.
// Context cancellation never is.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientSQLStates[pgErr.Code] || (len(pgErr.Code) == 5 && pgErr.Code[:2] == "08")
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

func withJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1)
	// #nosec G404 -- jitter does not need cryptographic randomness.
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
