// Package trace observes the parse pipeline with nested spans.
//
// Включается флагами CLI:
//
//	plcst parse --trace=- --trace-level=detail Project.sln
//
// # Tracers
//
//   - Nop: no-op, used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped when a unit fails
//   - MultiTracer: fans out to several tracers
//
// # Scopes
//
//   - ScopeDriver: one CLI command
//   - ScopeProject: a solution, project or target walk
//   - ScopeUnit: one source unit
//   - ScopeStage: extract, parse, transform, summarize
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", parentID)
//	defer span.End("")
package trace
