// Package observability groups the logging, metrics and tracing support
// used by the API server.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry HTTP middleware and tracer lookup
package observability
