package safevec

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterDeregister(t *testing.T) {
	v := New[int]()
	a := &cursor[int]{vec: v}
	b := &cursor[int]{vec: v}

	var r registry[int]
	r.register(a)
	r.register(b)
	assert.Equal(t, 2, r.size())
	assert.Equal(t, 2, r.live())

	assert.True(t, r.deregister(b))
	assert.Equal(t, 1, r.size())
	assert.False(t, r.deregister(b), "already removed")

	assert.True(t, r.deregister(a))
	assert.Equal(t, 0, r.size())
}

func TestRegistry_TombstonesTrimFromTail(t *testing.T) {
	v := New[int]()
	cs := []*cursor[int]{{vec: v}, {vec: v}, {vec: v}}

	var r registry[int]
	for _, c := range cs {
		r.register(c)
	}

	// Middle slot becomes a tombstone and stays.
	r.deregister(cs[1])
	assert.Equal(t, 3, r.size())
	assert.Equal(t, 2, r.live())

	// Releasing the tail trims the tombstone behind it as well.
	r.deregister(cs[2])
	assert.Equal(t, 1, r.size())
	assert.Equal(t, 1, r.live())

	runtime.KeepAlive(cs)
}

func TestRegistry_LIFOReleaseKeepsSlotsShort(t *testing.T) {
	v := From([]int{1, 2, 3})

	outer := v.Begin()
	for !outer.Done() {
		inner := v.CBegin()
		for !inner.Done() {
			inner.Next()
		}
		inner.Release()
		assert.Equal(t, 1, v.Stats().RegistrySlots)
		outer.Next()
	}
	outer.Release()
	assert.Equal(t, 0, v.Stats().RegistrySlots)
}

func TestRegistry_BroadcastSkipsTombstones(t *testing.T) {
	v := From([]int{1, 2, 3})
	a := v.IterAt(0)
	b := v.IterAt(1)
	c := v.IterAt(2)
	defer a.Release()
	defer c.Release()

	b.Release()
	n := v.handles.broadcast(rebase{at: 0, delta: 0, moved: true}, v.gen)
	assert.Equal(t, 2, n)
}

//go:noinline
func dropHandle(v *Vector[int]) {
	_ = v.Begin()
}

func TestRegistry_CollectedHandleBecomesTombstone(t *testing.T) {
	v := From([]int{1, 2, 3})
	dropHandle(v)
	require.Equal(t, 1, v.handles.size())

	for i := 0; i < 10 && v.LiveIterators() > 0; i++ {
		runtime.GC()
	}
	require.Equal(t, 0, v.LiveIterators())

	v.PushBack(4)
	assert.Equal(t, 0, v.Stats().RegistrySlots, "broadcast trims collected slots")
}
