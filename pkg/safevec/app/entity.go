package app

import "github.com/google/uuid"

// Model is a shared entity definition, decoded from a YAML source document.
//
//	ship:
//	  speed: 2
//	  lifetime: 40
//	  spawn_every: 10
//	  child: probe
type Model struct {
	// Speed is added to an entity's position every tick.
	Speed float64 `yaml:"speed"`
	// Lifetime is the age, in ticks, at which an entity expires. 0 never expires.
	Lifetime int `yaml:"lifetime"`
	// SpawnEvery spawns Child every this many ticks of age. 0 never spawns.
	SpawnEvery int `yaml:"spawn_every"`
	// Child names the model to spawn.
	Child string `yaml:"child"`
}

// Entity is one live simulation object.
type Entity struct {
	ID       uuid.UUID
	Name     string
	Model    *Model
	Age      int
	Position float64
}

func newEntity(name string, m *Model) *Entity {
	return &Entity{ID: uuid.New(), Name: name, Model: m}
}

// Update advances the entity by one tick. It reports whether the entity has
// expired and which model, if any, it spawns.
func (e *Entity) Update() (expired bool, spawn string) {
	e.Age++
	e.Position += e.Model.Speed

	if e.Model.SpawnEvery > 0 && e.Model.Child != "" && e.Age%e.Model.SpawnEvery == 0 {
		spawn = e.Model.Child
	}
	expired = e.Model.Lifetime > 0 && e.Age >= e.Model.Lifetime
	return expired, spawn
}
