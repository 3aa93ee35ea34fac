// Package trace records what a lint run is doing: driver steps, passes,
// individual files and, at debug level, single declarations.
//
// Enable it from the command line:
//
//	convlint lint --trace=- --trace-level=detail src/
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// LevelError keeps events in a ring buffer instead of writing them; the
// driver dumps the buffer only when a run aborts.
package trace
