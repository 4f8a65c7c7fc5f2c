// Package tracing provides OpenTelemetry tracing integration.
//
// Middleware starts a server span per HTTP request and renames it to the
// matched route pattern once the mux has routed the request. Repositories
// open child spans through GetTracer, so a listing request shows the page
// and count queries under the request span.
//
// No exporter is configured here; main installs a TracerProvider when one
// is wanted and otherwise the global no-op provider is used.
package tracing
