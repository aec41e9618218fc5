/*
Package app runs a tick-driven entity simulation on top of safevec.

An App keeps its live entities in a safevec.Vector and updates them with a
single driving iterator each tick. Updates may spawn new entities, which are
appended behind the iterator and first updated on the next tick, or expire,
in which case the entity is erased through the iterator and the walk
continues with the next one. Entity models are YAML definitions in a source.Store, resolved once by
name through a rescache.Cache.

# Lifecycle

	a := app.New(app.SettingsFrom(cfg), app.WithLogger(logger))
	if err := a.Init(ctx); err != nil {
	    return err
	}
	defer a.Shutdown(ctx)

	if err := a.Run(ctx); err != nil {
	    return err
	}

Calls out of order return ErrLifecycle. Failures are reported as *PhaseError
naming the phase; a panic raised while updating entities is returned as a
*PanicError inside it.
*/
package app
