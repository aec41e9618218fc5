package rescache

import (
	"log/slog"

	"github.com/randalmurphal/safevec/pkg/safevec/observability"
)

type cacheConfig struct {
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func defaultCacheConfig() cacheConfig {
	return cacheConfig{
		name:    "resources",
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Cache.
type Option func(*cacheConfig)

// WithName labels the cache in metrics and spans. Default: "resources"
func WithName(name string) Option {
	return func(c *cacheConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger logs loads, load failures, and flushes. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *cacheConfig) {
		c.logger = logger
	}
}

// WithMetrics records lookups. Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *cacheConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager traces loads. Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *cacheConfig) {
		if s != nil {
			c.spans = s
		}
	}
}
