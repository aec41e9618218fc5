package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordMutation does nothing.
func (NoopMetrics) RecordMutation(_ context.Context, _, _ string, _ int) {}

// RecordRebase does nothing.
func (NoopMetrics) RecordRebase(_ context.Context, _ string, _ int) {}

// RecordReallocation does nothing.
func (NoopMetrics) RecordReallocation(_ context.Context, _ string, _ int) {}

// RecordCacheLookup does nothing.
func (NoopMetrics) RecordCacheLookup(_ context.Context, _ string, _ bool, _ time.Duration, _ error) {}

// RecordTick does nothing.
func (NoopMetrics) RecordTick(_ context.Context, _, _, _ int, _ time.Duration) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartRunSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartRunSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartTickSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartTickSpan(ctx context.Context, _ int) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartLoadSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartLoadSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
