/*
Package config reads settings documents for safevec applications.

A Config wraps a decoded YAML or JSON map and exposes typed accessors that
fall back to a default instead of failing, so callers can describe every
setting with its default in one line:

	cfg, err := config.FromFile("sim.yaml")
	if err != nil {
	    return err
	}

	ticks := cfg.Int("sim.ticks", 100)
	interval := cfg.Duration("sim.interval", 0)
	vec := cfg.Section("vector")
	capacity := vec.Int("capacity", 64)

Keys may be dotted paths into nested maps. Durations accept Go duration
strings ("250ms") or numbers of seconds. Integers accept whole floats, which
is how JSON numbers arrive.

A Config is safe for concurrent reads.
*/
package config
