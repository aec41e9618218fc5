package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns its reader.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}
	return reader, cleanup
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumFor(t *testing.T, m *metricdata.Metrics, key, value string) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")
	var total int64
	for _, dp := range sum.DataPoints {
		for _, attr := range dp.Attributes.ToSlice() {
			if string(attr.Key) == key && attr.Value.AsString() == value {
				total += dp.Value
			}
		}
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordVectorMetrics(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics(otel.GetMeterProvider())
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordMutation(ctx, "entities", "insert", 1)
	m.RecordMutation(ctx, "entities", "erase", -1)
	m.RecordRebase(ctx, "entities", 3)
	m.RecordReallocation(ctx, "entities", 16)

	rm := collectMetrics(t, reader)

	mutations := findMetric(rm, "safevec.vector.mutations")
	require.NotNil(t, mutations)
	assert.Equal(t, int64(2), sumFor(t, mutations, "container", "entities"))
	assert.Equal(t, int64(1), sumFor(t, mutations, "op", "erase"))

	rebases := findMetric(rm, "safevec.vector.rebases")
	require.NotNil(t, rebases)
	assert.Equal(t, int64(1), sumFor(t, rebases, "container", "entities"))

	handles := findMetric(rm, "safevec.vector.rebased_handles")
	require.NotNil(t, handles)
	hist, ok := handles.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram[int64] type")
	require.NotEmpty(t, hist.DataPoints)
	assert.Equal(t, int64(3), hist.DataPoints[0].Sum)

	assert.NotNil(t, findMetric(rm, "safevec.vector.reallocations"))
	assert.NotNil(t, findMetric(rm, "safevec.vector.capacity"))
}

func TestRecordCacheLookup(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics(otel.GetMeterProvider())
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordCacheLookup(ctx, "models", false, 20*time.Millisecond, nil)
	m.RecordCacheLookup(ctx, "models", true, 0, nil)
	m.RecordCacheLookup(ctx, "models", false, time.Millisecond, errors.New("missing"))

	rm := collectMetrics(t, reader)

	lookups := findMetric(rm, "safevec.cache.lookups")
	require.NotNil(t, lookups)
	assert.Equal(t, int64(3), sumFor(t, lookups, "cache", "models"))

	errs := findMetric(rm, "safevec.cache.errors")
	require.NotNil(t, errs)
	assert.Equal(t, int64(1), sumFor(t, errs, "cache", "models"))

	assert.NotNil(t, findMetric(rm, "safevec.cache.latency_ms"))
}

func TestRecordTick(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics(otel.GetMeterProvider())
	require.NoError(t, err)

	m.RecordTick(context.Background(), 12, 2, 1, 3*time.Millisecond)

	rm := collectMetrics(t, reader)
	assert.NotNil(t, findMetric(rm, "safevec.app.ticks"))
	assert.NotNil(t, findMetric(rm, "safevec.app.tick_latency_ms"))

	active := findMetric(rm, "safevec.app.active_entities")
	require.NotNil(t, active)
	hist, ok := active.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.NotEmpty(t, hist.DataPoints)
	assert.Equal(t, int64(12), hist.DataPoints[0].Sum)
}

func TestNewMetricsRecorderWithProvider(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	m, err := NewMetricsRecorderWithProvider(provider)
	require.NoError(t, err)
	m.RecordRebase(context.Background(), "bodies", 2)

	rm := collectMetrics(t, reader)
	rebases := findMetric(rm, "safevec.vector.rebases")
	require.NotNil(t, rebases)
	assert.Equal(t, int64(1), sumFor(t, rebases, "container", "bodies"))
}
