// Package trace is the structured log of sift.
//
// A run is recorded as nested spans: the run itself, each linted file, each
// analysis pass of the fix loop and, at the most verbose level, every rule
// invocation. Cache decisions and convergence problems are recorded as point
// events inside the span that produced them.
//
// Tracing is off unless requested on the command line:
//
//	sift lint --trace=- --trace-level=detail src/
//
// Events go to a stream (a file or stderr), to an in-memory ring that is
// dumped when the run fails, or to both. The active tracer and the current
// span travel in the context:
//
//	ctx = trace.WithTracer(ctx, t)
//	span, ctx := trace.StartSpan(ctx, trace.ScopeFile, "lint")
//	defer span.End("")
//	trace.PointFrom(ctx, trace.ScopeFile, "cache hit", path)
package trace
