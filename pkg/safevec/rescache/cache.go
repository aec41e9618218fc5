package rescache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/randalmurphal/safevec/pkg/safevec/observability"
)

// Loader produces the value for a name.
type Loader[V any] func(ctx context.Context, name string) (V, error)

// Cache is a load-once map from resource name to value.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	load    Loader[V]

	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates an empty cache backed by load.
func New[V any](load Loader[V], opts ...Option) *Cache[V] {
	cfg := defaultCacheConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[V]{
		entries: make(map[string]V),
		load:    load,
		name:    cfg.name,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		spans:   cfg.spans,
	}
}

// Lookup returns the value for name, loading it on first use.
// Errors wrap ErrNotFound; see LoadError.
func (c *Cache[V]) Lookup(ctx context.Context, name string) (V, error) {
	start := time.Now()

	// Fast path
	c.mu.RLock()
	v, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		c.metrics.RecordCacheLookup(ctx, c.name, true, time.Since(start), nil)
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if v, ok := c.entries[name]; ok {
		c.metrics.RecordCacheLookup(ctx, c.name, true, time.Since(start), nil)
		return v, nil
	}

	ctx, span := c.spans.StartLoadSpan(ctx, c.name, name)
	v, err := c.load(ctx, name)
	if err != nil {
		err = &LoadError{Name: name, Err: err}
	}
	c.spans.EndSpanWithError(span, err)
	c.metrics.RecordCacheLookup(ctx, c.name, false, time.Since(start), err)

	if err != nil {
		observability.LogCacheLoadError(c.logger, name, err)
		var zero V
		return zero, err
	}

	observability.LogCacheLoad(c.logger, name, float64(time.Since(start).Microseconds())/1000)
	c.entries[name] = v
	return v, nil
}

// MustLookup is Lookup for resources that are required to exist.
// It panics if the load fails.
func (c *Cache[V]) MustLookup(ctx context.Context, name string) V {
	v, err := c.Lookup(ctx, name)
	if err != nil {
		panic("rescache: " + err.Error())
	}
	return v
}

// Has reports whether name is loaded. It never triggers a load.
func (c *Cache[V]) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[name]
	return ok
}

// Len returns the number of loaded values.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Names returns the loaded names in sorted order.
func (c *Cache[V]) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Evict drops one value, closing it if it implements io.Closer.
// Evicting a name that is not loaded is a no-op.
func (c *Cache[V]) Evict(name string) error {
	c.mu.Lock()
	v, ok := c.entries[name]
	delete(c.entries, name)
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return release(v)
}

// Flush drops every value, closing those that implement io.Closer, and
// returns the joined close errors.
func (c *Cache[V]) Flush() error {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[string]V)
	c.mu.Unlock()

	var errs []error
	for name, v := range entries {
		if err := release(v); err != nil {
			errs = append(errs, &LoadError{Name: name, Err: err})
		}
	}
	observability.LogCacheFlush(c.logger, len(entries))
	return errors.Join(errs...)
}

// Close implements io.Closer by flushing.
func (c *Cache[V]) Close() error {
	return c.Flush()
}

func release(v any) error {
	if closer, ok := v.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
