package safevec

// rebase describes one structural mutation in index space.
//
// Positions are indices relative to the start of the backing store, so a
// reallocation that moves every element leaves every index valid: the address
// displacement of the move is always zero here, and moved only refreshes the
// cached storage generation in each cursor's shadow.
type rebase struct {
	moved bool // storage was reallocated
	at    int  // first index inserted at, or first index removed
	delta int  // +n inserted, -n removed, 0 for pure reallocation
}

// noop reports whether no handle can observe the mutation.
func (rb rebase) noop() bool {
	return !rb.moved && rb.delta == 0
}

// apply maps a pre-mutation position to its post-mutation position.
//
// Insertion: positions at or after at move right by delta, so a handle at the
// insertion point keeps denoting the element that was there.
//
// Removal of n = -delta elements [at, at+n): positions at or after at+n move
// left by n; positions inside the removed range collapse onto at, which is the
// element that followed the range (or the end sentinel).
func (rb rebase) apply(pos int) (int, bool) {
	switch {
	case rb.delta > 0:
		if pos >= rb.at {
			return pos + rb.delta, false
		}
	case rb.delta < 0:
		n := -rb.delta
		if pos >= rb.at+n {
			return pos - n, false
		}
		if pos >= rb.at {
			return rb.at, true
		}
	}
	return pos, false
}

// shadow is the debug-only view of the valid range a cursor saw at its last
// rebase. start is the storage generation cached at that point; end points at
// the owning vector's rebased length.
type shadow struct {
	start uint64
	end   *int
}

// cursor is the registered state behind a handle.
type cursor[T any] struct {
	vec      *Vector[T]
	pos      int
	released bool
	// displaced is set when a rebase removed the element under the cursor.
	displaced bool
	shadow    shadow
}

func (c *cursor[T]) rebase(rb rebase, gen uint64) {
	var displaced bool
	c.pos, displaced = rb.apply(c.pos)
	if displaced {
		c.displaced = true
	}
	if boundsChecking {
		c.shadow.start = gen
		if c.pos < 0 || c.pos > *c.shadow.end {
			c.vec.fail("rebase", c.pos, ErrOutOfBounds)
		}
	}
}
