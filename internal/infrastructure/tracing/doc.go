// Package tracing provides request tracing for debugging and correlation.
//
// Spans carry a trace ID shared by every operation in a request and a
// span ID unique to each operation. Completed spans are logged through
// zap; trace context propagates via X-Trace-ID and X-Span-ID headers so
// callers can correlate client and server logs.
//
// Example Usage:
//
//	tracer := tracing.New("filedeck", logger.Logger)
//	router.Use(tracing.HTTPMiddleware(tracer))
//
//	span, ctx := tracer.StartSpan(ctx, "archive.create")
//	defer func() { span.Finish(); tracer.Submit(span) }()
package tracing
