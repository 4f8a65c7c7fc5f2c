// Package resilience provides fault tolerance for the database layer.
//
// The package supports:
//   - A circuit breaker around *sql.DB so a failing database fails requests fast
//   - Retry with exponential backoff and jitter for transient PostgreSQL errors
//
// Usage Example:
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	store := postgres.NewStore(guarded)
//
//	err := retry.WithBackoff(ctx, retry.TxConfig(), func() error {
//	    return store.WithinTx(ctx, fn)
//	})
package resilience
