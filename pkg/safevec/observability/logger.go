// Package observability provides structured logging, metrics, and tracing
// helpers shared by the safevec packages.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every helper tolerates a nil logger.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds container context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "entities")
//	enriched.Debug("rebased") // includes container=entities
func EnrichLogger(logger *slog.Logger, container string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("container", container))
}

// LogReallocation logs a backing store reallocation.
func LogReallocation(logger *slog.Logger, container string, oldCap, newCap int) {
	if logger == nil {
		return
	}
	logger.Debug("storage reallocated",
		slog.String("container", container),
		slog.Int("old_cap", oldCap),
		slog.Int("new_cap", newCap),
	)
}

// LogRebase logs a rebase broadcast after a structural mutation.
func LogRebase(logger *slog.Logger, container, op string, at, delta, handles int) {
	if logger == nil {
		return
	}
	logger.Debug("iterators rebased",
		slog.String("container", container),
		slog.String("op", op),
		slog.Int("at", at),
		slog.Int("delta", delta),
		slog.Int("handles", handles),
	)
}

// LogAssertion logs a failed precondition right before the caller panics.
func LogAssertion(logger *slog.Logger, container, op string, err error) {
	if logger == nil {
		return
	}
	logger.Error("assertion failed",
		slog.String("container", container),
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

// LogCacheLoad logs a successful resource load.
func LogCacheLoad(logger *slog.Logger, name string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("resource loaded",
		slog.String("name", name),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCacheLoadError logs a failed resource load.
func LogCacheLoadError(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("resource load failed",
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
}

// LogCacheFlush logs a cache flush.
func LogCacheFlush(logger *slog.Logger, released int) {
	if logger == nil {
		return
	}
	logger.Info("cache flushed",
		slog.Int("released", released),
	)
}

// LogPhase logs an application lifecycle phase.
func LogPhase(logger *slog.Logger, phase string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("phase completed",
		slog.String("phase", phase),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogPhaseError logs a failed lifecycle phase.
func LogPhaseError(logger *slog.Logger, phase string, err error) {
	if logger == nil {
		return
	}
	logger.Error("phase failed",
		slog.String("phase", phase),
		slog.String("error", err.Error()),
	)
}

// LogTick logs one simulation tick.
func LogTick(logger *slog.Logger, tick, active, spawned, expired int) {
	if logger == nil {
		return
	}
	logger.Debug("tick",
		slog.Int("tick", tick),
		slog.Int("active", active),
		slog.Int("spawned", spawned),
		slog.Int("expired", expired),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
