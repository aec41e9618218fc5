package app

import (
	"log/slog"

	"github.com/randalmurphal/safevec/pkg/safevec/observability"
	"github.com/randalmurphal/safevec/pkg/safevec/source"
)

type appConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	store   source.Store
}

func defaultAppConfig() appConfig {
	return appConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures an App.
type Option func(*appConfig)

// WithLogger enables logging for the app and everything it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(c *appConfig) {
		c.logger = logger
	}
}

// WithMetrics records vector, cache, and tick metrics.
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *appConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager traces the run, each tick, and model loads.
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *appConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithStore supplies the model store instead of opening one from Settings.
// The caller keeps ownership; Shutdown does not close it.
func WithStore(store source.Store) Option {
	return func(c *appConfig) {
		c.store = store
	}
}
