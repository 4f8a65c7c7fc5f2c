package http

import (
	"net/http"
	"strconv"
	"time"

	"book-journal/internal/handler/http/pathutil"
	"book-journal/internal/handler/http/responsewriter"
	"book-journal/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records RED metrics for every request. Paths are normalized with
// pathutil so ids and ISBNs do not become label values.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			rw := responsewriter.Wrap(w)
			start := time.Now()
			next.ServeHTTP(rw, r)

			requestSize := 0
			if r.ContentLength > 0 {
				requestSize = int(r.ContentLength)
			}
			metrics.RecordHTTPRequest(
				r.Method,
				pathutil.NormalizePath(r.URL.Path),
				strconv.Itoa(rw.StatusCode()),
				time.Since(start),
				requestSize,
				rw.BytesWritten(),
			)
		})
	}
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
