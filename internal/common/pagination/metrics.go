package pagination

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const subsystem = "cursor_pagination"

var (
	// RequestsTotal is labelled by listing (posts, user_posts, my_posts),
	// HTTP status and page (first, next).
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Paginated listing requests.",
	}, []string{"listing", "status", "page"})

	DurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "duration_seconds",
		Help:      "Time to serve one page, by listing.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2},
	}, []string{"listing"})

	PageSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "page_size",
		Help:      "Rows returned per page.",
		Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
	})

	// ErrorsTotal is labelled by ErrorType.
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "errors_total",
		Help:      "Failed paginated requests, by cause.",
	}, []string{"type"})
)

// RecordRequest counts one request for listing answered with statusCode.
func RecordRequest(listing string, statusCode int, hasCursor bool) {
	page := "first"
	if hasCursor {
		page = "next"
	}
	RequestsTotal.WithLabelValues(listing, strconv.Itoa(statusCode), page).Inc()
}

func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// ErrorType names the cause of a failed page. Anything that is not a client
// error is blamed on the store.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCursor):
		return "invalid_cursor"
	case errors.Is(err, ErrInvalidOrderDirection), errors.Is(err, ErrInvalidOrderField):
		return "invalid_order"
	case errors.Is(err, ErrInvalidTake):
		return "invalid_take"
	default:
		return "database"
	}
}
