package app

import (
	"time"

	"github.com/randalmurphal/safevec/pkg/safevec/config"
)

// Settings configures an App.
type Settings struct {
	// Name labels logs, metrics, and the run span. Default: "safevec"
	Name string
	// Ticks is the number of ticks Run performs. 0 runs until the context ends.
	Ticks int
	// Interval is the wall-clock time between ticks. 0 runs flat out.
	Interval time.Duration
	// MaxEntities caps the population; spawns beyond it are dropped. 0 is
	// uncapped.
	MaxEntities int
	// StopWhenEmpty ends Run early once no entities remain.
	StopWhenEmpty bool
	// Initial lists the models spawned by Init, one entity each.
	Initial []string
	// Capacity is the initial capacity of the entity vector.
	Capacity int
	// Database is the SQLite path of the model store; empty uses memory.
	Database string
	// SeedFile is a YAML file of model definitions loaded by Init.
	SeedFile string
}

// DefaultSettings returns the settings used for missing keys.
func DefaultSettings() Settings {
	return Settings{
		Name:          "safevec",
		Ticks:         100,
		MaxEntities:   10000,
		StopWhenEmpty: true,
		Capacity:      64,
	}
}

// SettingsFrom reads settings from a config document:
//
//	app:
//	  name: demo
//	  ticks: 100
//	  interval: 50ms
//	  max_entities: 10000
//	  stop_when_empty: true
//	  initial: [ship, ship, rock]
//	vector:
//	  capacity: 64
//	source:
//	  database: models.db
//	  seed: models.yaml
func SettingsFrom(cfg config.Config) Settings {
	def := DefaultSettings()
	a := cfg.Section("app")
	return Settings{
		Name:          a.String("name", def.Name),
		Ticks:         a.Int("ticks", def.Ticks),
		Interval:      a.Duration("interval", def.Interval),
		MaxEntities:   a.Int("max_entities", def.MaxEntities),
		StopWhenEmpty: a.Bool("stop_when_empty", def.StopWhenEmpty),
		Initial:       a.StringSlice("initial", def.Initial),
		Capacity:      cfg.Int("vector.capacity", def.Capacity),
		Database:      cfg.String("source.database", def.Database),
		SeedFile:      cfg.String("source.seed", def.SeedFile),
	}
}
