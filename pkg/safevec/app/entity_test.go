package app

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEntity_Update(t *testing.T) {
	tests := []struct {
		name        string
		model       Model
		ticks       int
		wantExpired bool
		wantSpawn   string
		wantPos     float64
	}{
		{"moves", Model{Speed: 1.5}, 2, false, "", 3},
		{"expires at lifetime", Model{Lifetime: 3}, 3, true, "", 0},
		{"alive before lifetime", Model{Lifetime: 3}, 2, false, "", 0},
		{"spawns on schedule", Model{SpawnEvery: 2, Child: "probe"}, 4, false, "probe", 0},
		{"no spawn off schedule", Model{SpawnEvery: 2, Child: "probe"}, 3, false, "", 0},
		{"no child", Model{SpawnEvery: 1}, 1, false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEntity("x", &tt.model)
			var expired bool
			var spawn string
			for range tt.ticks {
				expired, spawn = e.Update()
			}
			assert.Equal(t, tt.wantExpired, expired)
			assert.Equal(t, tt.wantSpawn, spawn)
			assert.InDelta(t, tt.wantPos, e.Position, 1e-9)
			assert.Equal(t, tt.ticks, e.Age)
		})
	}
}

func TestNewEntity_UniqueIDs(t *testing.T) {
	m := &Model{}
	a, b := newEntity("a", m), newEntity("a", m)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
