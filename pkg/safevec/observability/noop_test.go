package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordMutation(ctx, "vec", "insert", 1)
		m.RecordRebase(ctx, "vec", 0)
		m.RecordReallocation(ctx, "vec", 8)
		m.RecordCacheLookup(ctx, "models", true, time.Millisecond, errors.New("x"))
		m.RecordTick(ctx, 1, 0, 0, 0)
	})
}

func TestNoopSpanManager(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	t.Run("returns context unchanged", func(t *testing.T) {
		got, span := sm.StartRunSpan(ctx, "demo", "run")
		assert.Equal(t, ctx, got)
		assert.False(t, span.IsRecording())

		got, _ = sm.StartTickSpan(ctx, 1)
		assert.Equal(t, ctx, got)

		got, _ = sm.StartLoadSpan(ctx, "models", "ship")
		assert.Equal(t, ctx, got)
	})

	t.Run("end and events do not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_, span := sm.StartTickSpan(ctx, 2)
			sm.AddSpanEvent(ctx, "evt", attribute.Int("n", 1))
			sm.EndSpanWithError(span, errors.New("x"))
		})
	})
}
