// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application metrics:
//   - HTTP request metrics (duration, count, size, in-flight)
//   - Journal write metrics (post writes, catalogue inserts)
//   - Database query, pool and circuit breaker metrics
//
// Cursor pagination has its own counters in internal/common/pagination.
// Series are prefixed "journal_", registered with the Prometheus default
// registry and exposed on /metrics.
//
// Example usage:
//
//	import "book-journal/internal/observability/metrics"
//
//	func save(ctx context.Context) (err error) {
//	    defer func() { metrics.RecordPostWrite("create", err) }()
//	    ...
//	}
package metrics
