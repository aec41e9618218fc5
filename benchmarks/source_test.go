package benchmarks

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/randalmurphal/safevec/pkg/safevec/rescache"
	"github.com/randalmurphal/safevec/pkg/safevec/source"
)

type model struct {
	Speed    float64 `yaml:"speed"`
	Lifetime int     `yaml:"lifetime"`
	Child    string  `yaml:"child"`
}

var definition = []byte("speed: 2.5\nlifetime: 40\nchild: probe\n")

func createSQLiteStore(b *testing.B) *source.SQLiteStore {
	b.Helper()
	store, err := source.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = store.Close() })
	return store
}

// BenchmarkMemoryStore_Put measures in-memory definition writes.
func BenchmarkMemoryStore_Put(b *testing.B) {
	ctx := context.Background()
	store := source.NewMemoryStore()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Put(ctx, "ship", definition)
	}
}

// BenchmarkSQLiteStore_Put measures SQLite definition writes.
func BenchmarkSQLiteStore_Put(b *testing.B) {
	ctx := context.Background()
	store := createSQLiteStore(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Put(ctx, "model-"+strconv.Itoa(i%100), definition)
	}
}

// BenchmarkSQLiteStore_Get measures SQLite definition reads.
func BenchmarkSQLiteStore_Get(b *testing.B) {
	ctx := context.Background()
	store := createSQLiteStore(b)
	_, _ = store.Put(ctx, "ship", definition)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Get(ctx, "ship")
	}
}

// BenchmarkCache_Hit measures a cached model lookup.
func BenchmarkCache_Hit(b *testing.B) {
	ctx := context.Background()
	store := source.NewMemoryStore()
	_, _ = store.Put(ctx, "ship", definition)
	cache := rescache.New(rescache.SourceLoader[*model](store, rescache.DecodeYAML[model]))
	_, _ = cache.Lookup(ctx, "ship")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Lookup(ctx, "ship")
	}
}

// BenchmarkCache_Miss measures load plus decode after a flush.
func BenchmarkCache_Miss(b *testing.B) {
	ctx := context.Background()
	store := source.NewMemoryStore()
	_, _ = store.Put(ctx, "ship", definition)
	cache := rescache.New(rescache.SourceLoader[*model](store, rescache.DecodeYAML[model]))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Lookup(ctx, "ship")
		_ = cache.Flush()
	}
}
