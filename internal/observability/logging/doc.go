// Package logging builds the service's slog loggers and carries request-scoped
// fields through context.
//
// Key features:
//   - JSON (default) or text output chosen by LOG_FORMAT
//   - LOG_LEVEL of debug, info, warn or error
//   - Request ID and trace ID enrichment
//
// Example usage:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    log := logging.WithRequestID(r.Context(), h.Logger)
//	    log.Info("listing posts")
//	}
package logging
