// Package trace emits levelled events about what the tokenizer driver is
// doing: which files it loads, cache hits and misses, how long each phase takes.
//
// Enable it from the CLI:
//
//	gherkin tokenize --trace=- --trace-level=detail features/
//
// A Tracer travels through the driver in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "tokenize", 0)
//	defer span.End("")
//
// Levels map to scopes: phase shows driver and phase boundaries, detail adds
// per-file events, debug adds everything.
package trace
