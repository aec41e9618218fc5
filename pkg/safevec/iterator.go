package safevec

import "cmp"

// Handle is implemented by ConstIterator and Iterator, so either can be
// passed as a position to Vector methods.
type Handle[T any] interface {
	handle() *cursor[T]
}

// ConstIterator is a read-only random-access handle into a Vector.
//
// A handle is registered with its vector from creation until Release, and is
// repositioned by every structural mutation so that it keeps denoting the
// same element. The zero ConstIterator is not usable.
//
// Copying a ConstIterator value copies a reference to the same registered
// handle; use Clone for an independent one.
type ConstIterator[T any] struct {
	c *cursor[T]
}

func (it ConstIterator[T]) handle() *cursor[T] { return it.c }

// live returns the cursor after asserting it is registered and has seen
// every rebase of its vector.
func (it ConstIterator[T]) live(op string) *cursor[T] {
	c := it.c
	if boundsChecking {
		if c == nil {
			panic(&AssertionError{Op: op, Index: -1, Err: ErrStaleIterator})
		}
		if c.released || c.shadow.start != c.vec.gen {
			c.vec.fail(op, c.pos, ErrStaleIterator)
		}
	}
	return c
}

// deref asserts pos is dereferenceable against the shadow bounds.
func (c *cursor[T]) deref(op string, pos int) {
	if boundsChecking && (pos < 0 || pos >= *c.shadow.end) {
		c.vec.fail(op, pos, ErrOutOfBounds)
	}
}

// within asserts pos lies in [begin, end].
func (c *cursor[T]) within(op string, pos int) {
	if boundsChecking && (pos < 0 || pos > *c.shadow.end) {
		c.vec.fail(op, pos, ErrOutOfBounds)
	}
}

// pair returns both cursors after asserting they share a vector.
func (it ConstIterator[T]) pair(op string, other Handle[T]) (*cursor[T], *cursor[T]) {
	c := it.live(op)
	oc := other.handle()
	if boundsChecking {
		if oc == nil || oc.released {
			c.vec.fail(op, -1, ErrStaleIterator)
		}
		if oc.vec != c.vec {
			c.vec.fail(op, oc.pos, ErrForeignIterator)
		}
	}
	return c, oc
}

// Get returns the element under the handle.
func (it ConstIterator[T]) Get() T {
	c := it.live("Get")
	c.deref("Get", c.pos)
	return c.vec.data.buf[c.pos]
}

// Ptr returns a pointer to the element under the handle.
// The pointer is valid until the next structural mutation.
func (it ConstIterator[T]) Ptr() *T {
	c := it.live("Ptr")
	c.deref("Ptr", c.pos)
	return &c.vec.data.buf[c.pos]
}

// At returns the element n positions away, like it[n].
func (it ConstIterator[T]) At(n int) T {
	c := it.live("At")
	c.deref("At", c.pos+n)
	return c.vec.data.buf[c.pos+n]
}

// Index returns the handle's position; Len() for the end sentinel.
func (it ConstIterator[T]) Index() int {
	return it.live("Index").pos
}

// Next advances one element.
func (it ConstIterator[T]) Next() {
	c := it.live("Next")
	if boundsChecking && c.pos >= *c.shadow.end {
		c.vec.fail("Next", c.pos, ErrOutOfBounds)
	}
	c.pos++
}

// Prev steps back one element.
func (it ConstIterator[T]) Prev() {
	c := it.live("Prev")
	if boundsChecking && c.pos <= 0 {
		c.vec.fail("Prev", c.pos, ErrOutOfBounds)
	}
	c.pos--
}

// Advance moves the handle by n, which may be negative.
func (it ConstIterator[T]) Advance(n int) {
	c := it.live("Advance")
	c.within("Advance", c.pos+n)
	c.pos += n
}

// Plus returns a new registered handle n positions away.
func (it ConstIterator[T]) Plus(n int) ConstIterator[T] {
	c := it.live("Plus")
	c.within("Plus", c.pos+n)
	return ConstIterator[T]{c: c.vec.newCursor(c.pos + n)}
}

// Minus returns a new registered handle n positions back.
func (it ConstIterator[T]) Minus(n int) ConstIterator[T] {
	return it.Plus(-n)
}

// Distance returns it - other. Both must belong to the same vector.
func (it ConstIterator[T]) Distance(other Handle[T]) int {
	c, oc := it.pair("Distance", other)
	return c.pos - oc.pos
}

// Compare returns -1, 0, or +1 ordering it against other.
func (it ConstIterator[T]) Compare(other Handle[T]) int {
	c, oc := it.pair("Compare", other)
	return cmp.Compare(c.pos, oc.pos)
}

// Equal reports whether both handles are at the same position.
func (it ConstIterator[T]) Equal(other Handle[T]) bool {
	c, oc := it.pair("Equal", other)
	return c.pos == oc.pos
}

// Less reports whether it is before other.
func (it ConstIterator[T]) Less(other Handle[T]) bool {
	c, oc := it.pair("Less", other)
	return c.pos < oc.pos
}

// LessEqual reports whether it is at or before other.
func (it ConstIterator[T]) LessEqual(other Handle[T]) bool {
	c, oc := it.pair("LessEqual", other)
	return c.pos <= oc.pos
}

// Greater reports whether it is after other.
func (it ConstIterator[T]) Greater(other Handle[T]) bool {
	c, oc := it.pair("Greater", other)
	return c.pos > oc.pos
}

// GreaterEqual reports whether it is at or after other.
func (it ConstIterator[T]) GreaterEqual(other Handle[T]) bool {
	c, oc := it.pair("GreaterEqual", other)
	return c.pos >= oc.pos
}

// Done reports whether the handle is at the end sentinel.
func (it ConstIterator[T]) Done() bool {
	c := it.live("Done")
	return c.pos >= c.vec.data.size()
}

// Valid reports whether the handle is registered and dereferenceable.
// It never panics.
func (it ConstIterator[T]) Valid() bool {
	c := it.c
	return c != nil && !c.released && c.pos >= 0 && c.pos < c.vec.data.size()
}

// Clone returns a new registered handle at the same position.
func (it ConstIterator[T]) Clone() ConstIterator[T] {
	c := it.live("Clone")
	return ConstIterator[T]{c: c.vec.newCursor(c.pos)}
}

// Assign moves the handle to other's position. When other belongs to a
// different vector the handle deregisters from its vector and registers with
// other's. A released handle is registered again.
func (it ConstIterator[T]) Assign(other Handle[T]) {
	c := it.c
	oc := other.handle()
	if boundsChecking {
		if c == nil || oc == nil || oc.released {
			panic(&AssertionError{Op: "Assign", Index: -1, Err: ErrStaleIterator})
		}
	}
	switch {
	case c.released:
		oc.vec.handles.register(c)
		c.released = false
	case c.vec != oc.vec:
		c.vec.handles.deregister(c)
		oc.vec.handles.register(c)
	}
	c.vec = oc.vec
	c.pos = oc.pos
	c.shadow = oc.shadow
	c.displaced = false
}

// Release deregisters the handle. It is safe to call more than once.
// A released handle must not be used again except through Assign.
func (it ConstIterator[T]) Release() {
	c := it.c
	if c == nil || c.released {
		return
	}
	c.vec.handles.deregister(c)
	c.released = true
}

// Released reports whether Release has been called.
func (it ConstIterator[T]) Released() bool {
	return it.c == nil || it.c.released
}

// Vector returns the vector the handle belongs to.
func (it ConstIterator[T]) Vector() *Vector[T] {
	if it.c == nil {
		return nil
	}
	return it.c.vec
}

// Iterator is a ConstIterator that can also write through the handle.
type Iterator[T any] struct {
	ConstIterator[T]
}

// Const returns a read-only view of the same registered handle.
func (it Iterator[T]) Const() ConstIterator[T] {
	return it.ConstIterator
}

// Ref returns a pointer to the element under the handle.
// The pointer is valid until the next structural mutation.
func (it Iterator[T]) Ref() *T {
	c := it.live("Ref")
	c.deref("Ref", c.pos)
	return &c.vec.data.buf[c.pos]
}

// Set replaces the element under the handle.
func (it Iterator[T]) Set(val T) {
	c := it.live("Set")
	c.deref("Set", c.pos)
	c.vec.data.buf[c.pos] = val
}

// RefAt returns a pointer to the element n positions away.
func (it Iterator[T]) RefAt(n int) *T {
	c := it.live("RefAt")
	c.deref("RefAt", c.pos+n)
	return &c.vec.data.buf[c.pos+n]
}

// SetAt replaces the element n positions away, like it[n] = val.
func (it Iterator[T]) SetAt(n int, val T) {
	c := it.live("SetAt")
	c.deref("SetAt", c.pos+n)
	c.vec.data.buf[c.pos+n] = val
}

// Plus returns a new registered handle n positions away.
func (it Iterator[T]) Plus(n int) Iterator[T] {
	return Iterator[T]{it.ConstIterator.Plus(n)}
}

// Minus returns a new registered handle n positions back.
func (it Iterator[T]) Minus(n int) Iterator[T] {
	return Iterator[T]{it.ConstIterator.Plus(-n)}
}

// Clone returns a new registered handle at the same position.
func (it Iterator[T]) Clone() Iterator[T] {
	return Iterator[T]{it.ConstIterator.Clone()}
}

// Erase removes the element under the handle. Afterwards the handle denotes
// the element that followed it, or the end.
func (it Iterator[T]) Erase() {
	c := it.live("Erase")
	c.deref("Erase", c.pos)
	c.vec.erase("Erase", c.pos, c.pos+1)
}
