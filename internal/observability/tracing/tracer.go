package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by this service.
const InstrumentationName = "book-journal"

// GetTracer returns the tracer for creating spans. It is looked up from the
// global provider on every call so a provider installed later (or swapped in
// a test) takes effect.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "postgres.PostRepo.ListPage")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
