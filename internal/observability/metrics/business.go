package metrics

import (
	"database/sql"
	"time"
)

// RecordPostWrite records the outcome of a post create, update or delete.
func RecordPostWrite(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	PostWritesTotal.WithLabelValues(operation, result).Inc()
}

// RecordBookCreated counts a book inserted because a post referenced an
// unknown ISBN.
func RecordBookCreated() {
	CatalogueInsertsTotal.WithLabelValues("book").Inc()
}

// RecordAuthorCreated counts an author inserted on first use.
func RecordAuthorCreated() {
	CatalogueInsertsTotal.WithLabelValues("author").Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query (e.g., "posts_list_page", "posts_count").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats copies connection pool statistics into the gauges.
func UpdateDBConnectionStats(stats sql.DBStats) {
	DBConnectionsActive.Set(float64(stats.InUse))
	DBConnectionsIdle.Set(float64(stats.Idle))
}

// RecordCircuitBreakerState publishes the state of the named breaker.
// state follows gobreaker's numbering: 0 closed, 1 half-open, 2 open.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
