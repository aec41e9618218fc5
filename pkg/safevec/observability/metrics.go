package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records safevec metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordMutation records a structural mutation and its signed element delta.
	RecordMutation(ctx context.Context, container, op string, delta int)

	// RecordRebase records a rebase broadcast and how many handles it touched.
	RecordRebase(ctx context.Context, container string, handles int)

	// RecordReallocation records a backing store reallocation.
	RecordReallocation(ctx context.Context, container string, capacity int)

	// RecordCacheLookup records a resource cache lookup.
	RecordCacheLookup(ctx context.Context, cache string, hit bool, duration time.Duration, err error)

	// RecordTick records one simulation tick.
	RecordTick(ctx context.Context, active, spawned, expired int, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	mutations      metric.Int64Counter
	rebases        metric.Int64Counter
	rebasedHandles metric.Int64Histogram
	reallocations  metric.Int64Counter
	capacity       metric.Int64Histogram
	cacheLookups   metric.Int64Counter
	cacheErrors    metric.Int64Counter
	cacheLatency   metric.Float64Histogram
	ticks          metric.Int64Counter
	tickLatency    metric.Float64Histogram
	activeEntities metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.GetMeterProvider())
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates the instruments on mp.
func newOtelMetrics(mp metric.MeterProvider) (*otelMetrics, error) {
	meter := mp.Meter("safevec")

	mutations, err := meter.Int64Counter("safevec.vector.mutations",
		metric.WithDescription("Number of structural mutations"),
	)
	if err != nil {
		return nil, err
	}

	rebases, err := meter.Int64Counter("safevec.vector.rebases",
		metric.WithDescription("Number of rebase broadcasts"),
	)
	if err != nil {
		return nil, err
	}

	rebasedHandles, err := meter.Int64Histogram("safevec.vector.rebased_handles",
		metric.WithDescription("Live handles touched per rebase broadcast"),
	)
	if err != nil {
		return nil, err
	}

	reallocations, err := meter.Int64Counter("safevec.vector.reallocations",
		metric.WithDescription("Number of backing store reallocations"),
	)
	if err != nil {
		return nil, err
	}

	capacity, err := meter.Int64Histogram("safevec.vector.capacity",
		metric.WithDescription("Capacity after reallocation"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter("safevec.cache.lookups",
		metric.WithDescription("Number of resource cache lookups"),
	)
	if err != nil {
		return nil, err
	}

	cacheErrors, err := meter.Int64Counter("safevec.cache.errors",
		metric.WithDescription("Number of failed resource loads"),
	)
	if err != nil {
		return nil, err
	}

	cacheLatency, err := meter.Float64Histogram("safevec.cache.latency_ms",
		metric.WithDescription("Resource lookup latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	ticks, err := meter.Int64Counter("safevec.app.ticks",
		metric.WithDescription("Number of simulation ticks"),
	)
	if err != nil {
		return nil, err
	}

	tickLatency, err := meter.Float64Histogram("safevec.app.tick_latency_ms",
		metric.WithDescription("Tick latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	activeEntities, err := meter.Int64Histogram("safevec.app.active_entities",
		metric.WithDescription("Active entities at the end of a tick"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		mutations:      mutations,
		rebases:        rebases,
		rebasedHandles: rebasedHandles,
		reallocations:  reallocations,
		capacity:       capacity,
		cacheLookups:   cacheLookups,
		cacheErrors:    cacheErrors,
		cacheLatency:   cacheLatency,
		ticks:          ticks,
		tickLatency:    tickLatency,
		activeEntities: activeEntities,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderWithProvider returns a MetricsRecorder bound to mp
// instead of the global provider.
func NewMetricsRecorderWithProvider(mp metric.MeterProvider) (MetricsRecorder, error) {
	m, err := newOtelMetrics(mp)
	if err != nil {
		return nil, fmt.Errorf("create instruments: %w", err)
	}
	return m, nil
}

// RecordMutation records a structural mutation.
func (m *otelMetrics) RecordMutation(ctx context.Context, container, op string, delta int) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("container", container),
		attribute.String("op", op),
		attribute.Bool("grows", delta > 0),
	))
}

// RecordRebase records a rebase broadcast.
func (m *otelMetrics) RecordRebase(ctx context.Context, container string, handles int) {
	attrs := metric.WithAttributes(attribute.String("container", container))
	m.rebases.Add(ctx, 1, attrs)
	m.rebasedHandles.Record(ctx, int64(handles), attrs)
}

// RecordReallocation records a reallocation.
func (m *otelMetrics) RecordReallocation(ctx context.Context, container string, capacity int) {
	attrs := metric.WithAttributes(attribute.String("container", container))
	m.reallocations.Add(ctx, 1, attrs)
	m.capacity.Record(ctx, int64(capacity), attrs)
}

// RecordCacheLookup records a cache lookup.
func (m *otelMetrics) RecordCacheLookup(ctx context.Context, cache string, hit bool, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("cache", cache),
		attribute.Bool("hit", hit),
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.cacheLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.cacheErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", cache)))
	}
}

// RecordTick records a simulation tick.
func (m *otelMetrics) RecordTick(ctx context.Context, active, spawned, expired int, duration time.Duration) {
	m.ticks.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("spawned", spawned > 0),
		attribute.Bool("expired", expired > 0),
	))
	m.tickLatency.Record(ctx, float64(duration.Milliseconds()))
	m.activeEntities.Record(ctx, int64(active))
}
