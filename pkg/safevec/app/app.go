package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/safevec/pkg/safevec"
	"github.com/randalmurphal/safevec/pkg/safevec/observability"
	"github.com/randalmurphal/safevec/pkg/safevec/rescache"
	"github.com/randalmurphal/safevec/pkg/safevec/source"
)

type state int

const (
	stateNew state = iota
	stateReady
	stateRan
	stateStopped
)

// App owns a model store, a model cache, and the live entity list, and
// drives the entities through a fixed number of ticks.
//
// An App is not safe for concurrent use.
type App struct {
	settings Settings
	state    state

	store     source.Store
	ownsStore bool
	models    *rescache.Cache[*Model]
	entities  *safevec.Vector[*Entity]
	stats     RunStats

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// RunStats summarizes the work done by Run.
type RunStats struct {
	Ticks   int
	Spawned int
	Expired int
	// Active is the population after the last tick.
	Active int
	// Vector is the entity vector's structural counters.
	Vector safevec.Stats
}

// New creates an App. Nothing is opened until Init.
func New(settings Settings, opts ...Option) *App {
	cfg := defaultAppConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &App{
		settings: settings,
		store:    cfg.store,
		logger:   cfg.logger,
		metrics:  cfg.metrics,
		spans:    cfg.spans,
	}
}

// Init opens the model store, loads the seed file, and spawns the initial
// entities. On failure everything opened is released and Init may be retried.
func (a *App) Init(ctx context.Context) (err error) {
	if a.state != stateNew {
		return ErrLifecycle
	}
	elapsed := observability.TimedOperation()
	defer func() {
		if err != nil {
			observability.LogPhaseError(a.logger, "init", err)
			_ = a.release()
		}
	}()

	if a.store == nil {
		if err := a.openStore(); err != nil {
			return &PhaseError{Phase: "init", Err: err}
		}
	}
	if a.settings.SeedFile != "" {
		if _, err := source.LoadYAMLSeedFile(ctx, a.store, a.settings.SeedFile); err != nil {
			return &PhaseError{Phase: "init", Err: err}
		}
	}

	a.models = rescache.New(
		rescache.SourceLoader[*Model](a.store, rescache.DecodeYAML[Model]),
		rescache.WithName("models"),
		rescache.WithLogger(a.logger),
		rescache.WithMetrics(a.metrics),
		rescache.WithSpanManager(a.spans),
	)
	a.entities = safevec.New[*Entity](
		safevec.WithName("entities"),
		safevec.WithCapacity(a.settings.Capacity),
		safevec.WithLogger(a.logger),
		safevec.WithMetrics(a.metrics),
	)

	for _, name := range a.settings.Initial {
		if _, err := a.spawn(ctx, name); err != nil {
			return &PhaseError{Phase: "init", Err: err}
		}
	}

	a.state = stateReady
	observability.LogPhase(a.logger, "init", elapsed())
	return nil
}

func (a *App) openStore() error {
	if a.settings.Database == "" {
		a.store = source.NewMemoryStore()
	} else {
		store, err := source.NewSQLiteStore(a.settings.Database)
		if err != nil {
			return err
		}
		a.store = store
	}
	a.ownsStore = true
	return nil
}

// Spawn adds one entity of the named model. It may be called between Init
// and Shutdown.
func (a *App) Spawn(ctx context.Context, model string) error {
	if a.state != stateReady && a.state != stateRan {
		return ErrLifecycle
	}
	_, err := a.spawn(ctx, model)
	return err
}

// spawn appends an entity unless the population is at its cap.
func (a *App) spawn(ctx context.Context, name string) (bool, error) {
	if a.settings.MaxEntities > 0 && a.entities.Len() >= a.settings.MaxEntities {
		return false, nil
	}
	m, err := a.models.Lookup(ctx, name)
	if err != nil {
		return false, fmt.Errorf("%w %q: %w", ErrUnknownModel, name, err)
	}
	a.entities.PushBack(newEntity(name, m))
	return true, nil
}

// Run performs Settings.Ticks ticks, or ticks until ctx ends when Ticks is 0.
// Run may be called once, after Init.
//
// Cancellation before the last tick returns a PhaseError wrapping the
// context error, except in run-until-cancelled mode where it is the normal
// way to stop.
func (a *App) Run(ctx context.Context) (err error) {
	if a.state != stateReady {
		return ErrLifecycle
	}
	a.state = stateRan

	elapsed := observability.TimedOperation()
	ctx, span := a.spans.StartRunSpan(ctx, a.settings.Name, uuid.NewString())
	defer func() {
		a.spans.EndSpanWithError(span, err)
		if err != nil {
			observability.LogPhaseError(a.logger, "run", err)
			return
		}
		observability.LogPhase(a.logger, "run", elapsed())
	}()

	var ticker *time.Ticker
	if a.settings.Interval > 0 {
		ticker = time.NewTicker(a.settings.Interval)
		defer ticker.Stop()
	}

	for n := 1; a.settings.Ticks == 0 || n <= a.settings.Ticks; n++ {
		if a.settings.StopWhenEmpty && a.entities.Empty() {
			return nil
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
		if err := ctx.Err(); err != nil {
			if a.settings.Ticks == 0 {
				return nil
			}
			return &PhaseError{Phase: "run", Err: err}
		}
		if err := a.tick(ctx, n); err != nil {
			return &PhaseError{Phase: "run", Err: err}
		}
	}
	return nil
}

func (a *App) tick(ctx context.Context, n int) error {
	start := time.Now()
	ctx, span := a.spans.StartTickSpan(ctx, n)

	spawned, expired, err := a.step(ctx, n)
	a.spans.EndSpanWithError(span, err)
	if err != nil {
		return err
	}

	active := a.entities.Len()
	a.stats.Ticks++
	a.stats.Spawned += spawned
	a.stats.Expired += expired
	a.metrics.RecordTick(ctx, active, spawned, expired, time.Since(start))
	observability.LogTick(a.logger, n, active, spawned, expired)
	return nil
}

// step updates every entity that was alive when the tick began. Entities
// spawned during the walk are appended behind the driving iterator and wait
// for the next tick; expired entities are erased through it.
func (a *App) step(ctx context.Context, n int) (spawned, expired int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Tick: n, Value: r, Stack: string(debug.Stack())}
		}
	}()

	it := a.entities.Begin()
	defer it.Release()

	for remaining := a.entities.Len(); remaining > 0; remaining-- {
		dead, child := it.Get().Update()
		if child != "" {
			ok, err := a.spawn(ctx, child)
			if err != nil {
				return spawned, expired, err
			}
			if ok {
				spawned++
			}
		}
		if dead {
			it.Erase()
			expired++
			continue
		}
		it.Next()
	}
	return spawned, expired, nil
}

// Shutdown releases the entities, the model cache, and the store if the App
// opened it. It may be called once, after Init.
func (a *App) Shutdown(_ context.Context) error {
	if a.state != stateReady && a.state != stateRan {
		return ErrLifecycle
	}
	a.state = stateStopped

	elapsed := observability.TimedOperation()
	if err := a.release(); err != nil {
		err = &PhaseError{Phase: "shutdown", Err: err}
		observability.LogPhaseError(a.logger, "shutdown", err)
		return err
	}
	observability.LogPhase(a.logger, "shutdown", elapsed())
	return nil
}

func (a *App) release() error {
	var errs []error
	if a.entities != nil {
		a.stats.Active = a.entities.Len()
		a.stats.Vector = a.entities.Stats()
		a.entities.Clear()
		a.entities = nil
	}
	if a.models != nil {
		errs = append(errs, a.models.Flush())
		a.models = nil
	}
	if a.ownsStore && a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
		a.ownsStore = false
	}
	return errors.Join(errs...)
}

// Settings returns the settings the App was created with.
func (a *App) Settings() Settings { return a.settings }

// Entities returns a snapshot of the live entities in update order.
func (a *App) Entities() []*Entity {
	if a.entities == nil {
		return nil
	}
	return a.entities.ToSlice()
}

// Models returns the names of the models loaded so far.
func (a *App) Models() []string {
	if a.models == nil {
		return nil
	}
	return a.models.Names()
}

// Stats returns the counters accumulated by Run.
func (a *App) Stats() RunStats {
	s := a.stats
	if a.entities != nil {
		s.Active = a.entities.Len()
		s.Vector = a.entities.Stats()
	}
	return s
}
