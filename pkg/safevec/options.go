package safevec

import (
	"log/slog"

	"github.com/randalmurphal/safevec/pkg/safevec/observability"
)

// vectorConfig holds construction options.
type vectorConfig struct {
	name     string
	capacity int
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
}

func defaultVectorConfig() vectorConfig {
	return vectorConfig{
		name:    "vector",
		metrics: observability.NoopMetrics{},
	}
}

// Option configures a Vector.
type Option func(*vectorConfig)

// WithCapacity seeds the backing store with room for n elements.
//
// Example:
//
//	v := safevec.New[int](safevec.WithCapacity(64))
func WithCapacity(n int) Option {
	return func(c *vectorConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithName labels the vector in logs and metrics.
// Default: "vector"
func WithName(name string) Option {
	return func(c *vectorConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger enables debug logging of reallocations and rebases, and error
// logging of failed assertions. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *vectorConfig) {
		c.logger = logger
	}
}

// WithMetrics records mutations, rebases, and reallocations.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	v := safevec.New[int](safevec.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *vectorConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}
