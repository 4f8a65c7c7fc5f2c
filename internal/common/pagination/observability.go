package pagination

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Observation follows one paginated request from parsing to response and
// emits its metrics and a single log line. The cursor value is never logged.
type Observation struct {
	ctx     context.Context
	logger  *slog.Logger
	listing string
	req     Request
	start   time.Time
}

// Observe starts timing a request for listing. req may be partially filled
// when parsing failed.
func Observe(ctx context.Context, logger *slog.Logger, listing string, req Request) *Observation {
	return &Observation{ctx: ctx, logger: logger, listing: listing, req: req, start: time.Now()}
}

// Served records a page of returned rows.
func (o *Observation) Served(returned int, hasNext bool) {
	elapsed := time.Since(o.start)
	RecordRequest(o.listing, http.StatusOK, o.req.Cursor != "")
	DurationSeconds.WithLabelValues(o.listing).Observe(elapsed.Seconds())
	PageSize.Observe(float64(returned))

	o.logger.LogAttrs(o.ctx, slog.LevelInfo, "page served",
		slog.String("listing", o.listing),
		slog.Bool("cursor_present", o.req.Cursor != ""),
		slog.Any("order", o.req.Order),
		slog.Int("take", o.req.Take),
		slog.Int("returned", returned),
		slog.Bool("has_next", hasNext),
		slog.Duration("duration", elapsed))
}

// Failed records a request answered with code. Client errors and server
// errors are counted by ErrorType and logged; other refusals such as 404 or
// 401 only count towards RequestsTotal.
func (o *Observation) Failed(code int, err error) {
	RecordRequest(o.listing, code, o.req.Cursor != "")
	if code < http.StatusInternalServerError && !IsClientError(err) {
		return
	}

	kind := ErrorType(err)
	RecordError(kind)
	level := slog.LevelWarn
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	o.logger.LogAttrs(o.ctx, level, "page failed",
		slog.String("listing", o.listing),
		slog.Bool("cursor_present", o.req.Cursor != ""),
		slog.Any("order", o.req.Order),
		slog.Int("take", o.req.Take),
		slog.Int("status", code),
		slog.String("error_type", kind),
		slog.String("error", err.Error()))
}
