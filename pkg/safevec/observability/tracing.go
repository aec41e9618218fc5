package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("safevec")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartRunSpan starts a span for a whole application run.
	StartRunSpan(ctx context.Context, appName, runID string) (context.Context, trace.Span)

	// StartTickSpan starts a span for one simulation tick.
	// The tick span should be a child of the run span.
	StartTickSpan(ctx context.Context, tick int) (context.Context, trace.Span)

	// StartLoadSpan starts a span for loading a cached resource.
	StartLoadSpan(ctx context.Context, cache, name string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
// A nil tracer means the package-level tracer.
type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// NewSpanManagerWithProvider returns a SpanManager bound to tp instead of the
// global provider.
func NewSpanManagerWithProvider(tp trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: tp.Tracer("safevec")}
}

func (m *otelSpanManager) t() trace.Tracer {
	if m.tracer != nil {
		return m.tracer
	}
	return tracer
}

// StartRunSpan starts a span for a whole application run.
func (m *otelSpanManager) StartRunSpan(ctx context.Context, appName, runID string) (context.Context, trace.Span) {
	return startRunSpan(ctx, m.t(), appName, runID)
}

// StartTickSpan starts a span for one tick.
func (m *otelSpanManager) StartTickSpan(ctx context.Context, tick int) (context.Context, trace.Span) {
	return startTickSpan(ctx, m.t(), tick)
}

// StartLoadSpan starts a span for a resource load.
func (m *otelSpanManager) StartLoadSpan(ctx context.Context, cache, name string) (context.Context, trace.Span) {
	return startLoadSpan(ctx, m.t(), cache, name)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// Convenience functions that operate on the global tracer.

// StartRunSpan starts a span for a whole application run.
func StartRunSpan(ctx context.Context, appName, runID string) (context.Context, trace.Span) {
	return startRunSpan(ctx, tracer, appName, runID)
}

func startRunSpan(ctx context.Context, t trace.Tracer, appName, runID string) (context.Context, trace.Span) {
	return t.Start(ctx, "safevec.run",
		trace.WithAttributes(
			attribute.String("app.name", appName),
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartTickSpan starts a span for one tick.
func StartTickSpan(ctx context.Context, tick int) (context.Context, trace.Span) {
	return startTickSpan(ctx, tracer, tick)
}

func startTickSpan(ctx context.Context, t trace.Tracer, tick int) (context.Context, trace.Span) {
	return t.Start(ctx, "safevec.tick",
		trace.WithAttributes(
			attribute.Int("tick", tick),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLoadSpan starts a span for a resource load.
func StartLoadSpan(ctx context.Context, cache, name string) (context.Context, trace.Span) {
	return startLoadSpan(ctx, tracer, cache, name)
}

func startLoadSpan(ctx context.Context, t trace.Tracer, cache, name string) (context.Context, trace.Span) {
	return t.Start(ctx, "safevec.cache.load",
		trace.WithAttributes(
			attribute.String("cache", cache),
			attribute.String("resource.name", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the span stored in ctx, if it is recording.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
