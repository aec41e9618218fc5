package safevec

import "weak"

// registry tracks the cursors of every outstanding handle of one Vector.
//
// Slots are weak pointers: the vector never keeps a handle alive. A slot is a
// tombstone when it is the zero Pointer (explicit deregistration) or when its
// cursor has been garbage collected. Tombstones are trimmed only from the
// tail, so releasing handles in LIFO order keeps the slice short.
type registry[T any] struct {
	slots []weak.Pointer[cursor[T]]
}

// register appends c. O(1) amortized.
func (r *registry[T]) register(c *cursor[T]) {
	r.slots = append(r.slots, weak.Make(c))
}

// deregister tombstones the slot holding c and trims trailing tombstones.
// The scan starts at the tail because nested loops release in LIFO order.
// Reports whether c was found.
func (r *registry[T]) deregister(c *cursor[T]) bool {
	wp := weak.Make(c)
	for i := len(r.slots) - 1; i >= 0; i-- {
		if r.slots[i] == wp {
			r.slots[i] = weak.Pointer[cursor[T]]{}
			r.trim()
			return true
		}
	}
	return false
}

func (r *registry[T]) trim() {
	n := len(r.slots)
	for n > 0 && r.slots[n-1].Value() == nil {
		n--
	}
	clear(r.slots[n:])
	r.slots = r.slots[:n]
}

// broadcast applies rb to every live cursor and returns how many it touched.
func (r *registry[T]) broadcast(rb rebase, gen uint64) int {
	n := 0
	for _, slot := range r.slots {
		if c := slot.Value(); c != nil {
			c.rebase(rb, gen)
			n++
		}
	}
	r.trim()
	return n
}

// live counts non-tombstone slots.
func (r *registry[T]) live() int {
	n := 0
	for _, slot := range r.slots {
		if slot.Value() != nil {
			n++
		}
	}
	return n
}

// size is the raw slot count, tombstones included.
func (r *registry[T]) size() int {
	return len(r.slots)
}
