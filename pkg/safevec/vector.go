package safevec

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"unsafe"

	"github.com/randalmurphal/safevec/pkg/safevec/observability"
)

// Vector is a growable contiguous sequence whose iterators survive structural
// mutation. Every handle obtained from a Vector is registered with it, and
// every insert, erase, push, pop, resize, reserve, or shrink repositions all
// registered handles before returning, so each keeps denoting the element it
// denoted before the call.
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	data    store[T]
	handles registry[T]

	// gen is the storage generation. It changes whenever the backing array
	// is replaced (reallocation or swap).
	gen uint64
	// end is the length as of the last completed mutation. Cursor shadows
	// point here.
	end int

	stats   Stats
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// Stats counts the structural work a Vector has done.
type Stats struct {
	// Reallocations is the number of times the backing array was replaced by growth or shrink.
	Reallocations int
	// Rebases is the number of rebase broadcasts.
	Rebases int
	// HandlesRebased is the total number of handle repositionings across all broadcasts.
	HandlesRebased int
	// RegistrySlots is the current registry length, tombstones included.
	RegistrySlots int
}

// New creates an empty vector.
func New[T any](opts ...Option) *Vector[T] {
	cfg := defaultVectorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &Vector[T]{
		name:    cfg.name,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
	if cfg.capacity > 0 {
		v.data.buf = make([]T, 0, cfg.capacity)
	}
	return v
}

// From creates a vector holding a copy of values.
func From[T any](values []T, opts ...Option) *Vector[T] {
	v := New[T](opts...)
	v.data.push(values...)
	v.end = v.data.size()
	return v
}

// fail logs and raises a precondition violation.
func (v *Vector[T]) fail(op string, index int, err error) {
	observability.LogAssertion(v.logger, v.name, op, err)
	panic(&AssertionError{Op: op, Index: index, Err: err})
}

func (v *Vector[T]) checkIndex(op string, i int) {
	if boundsChecking && (i < 0 || i >= v.data.size()) {
		v.fail(op, i, ErrIndexOutOfRange)
	}
}

func (v *Vector[T]) checkNotEmpty(op string) {
	if boundsChecking && v.data.size() == 0 {
		v.fail(op, -1, ErrEmpty)
	}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.data.size() }

// Cap returns the capacity of the backing store.
func (v *Vector[T]) Cap() int { return v.data.capacity() }

// Empty reports whether the vector has no elements.
func (v *Vector[T]) Empty() bool { return v.data.size() == 0 }

// MaxLen returns the theoretical upper bound on Len.
func (v *Vector[T]) MaxLen() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return math.MaxInt
	}
	return math.MaxInt / size
}

// Name returns the label used in logs and metrics.
func (v *Vector[T]) Name() string { return v.name }

// Generation identifies the current backing array. It changes only as a
// direct result of a reallocation or swap.
func (v *Vector[T]) Generation() uint64 { return v.gen }

// LiveIterators returns the number of registered handles.
func (v *Vector[T]) LiveIterators() int { return v.handles.live() }

// Stats returns a snapshot of the vector's structural counters.
func (v *Vector[T]) Stats() Stats {
	s := v.stats
	s.RegistrySlots = v.handles.size()
	return s
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) T {
	v.checkIndex("At", i)
	return v.data.buf[i]
}

// Ref returns a pointer to the element at index i.
// The pointer is valid until the next structural mutation.
func (v *Vector[T]) Ref(i int) *T {
	v.checkIndex("Ref", i)
	return &v.data.buf[i]
}

// Set replaces the element at index i.
func (v *Vector[T]) Set(i int, val T) {
	v.checkIndex("Set", i)
	v.data.buf[i] = val
}

// Front returns the first element.
func (v *Vector[T]) Front() T {
	v.checkNotEmpty("Front")
	return v.data.buf[0]
}

// Back returns the last element.
func (v *Vector[T]) Back() T {
	v.checkNotEmpty("Back")
	return v.data.buf[v.data.size()-1]
}

// Data returns the backing slice. It aliases the vector's storage and is
// valid until the next structural mutation; appending to it does not
// change the vector.
func (v *Vector[T]) Data() []T { return v.data.buf }

// ToSlice returns a copy of the elements.
func (v *Vector[T]) ToSlice() []T { return slices.Clone(v.data.buf) }

// newCursor registers a cursor at pos.
func (v *Vector[T]) newCursor(pos int) *cursor[T] {
	c := &cursor[T]{
		vec:    v,
		pos:    pos,
		shadow: shadow{start: v.gen, end: &v.end},
	}
	v.handles.register(c)
	return c
}

func (v *Vector[T]) iter(pos int) Iterator[T] {
	return Iterator[T]{ConstIterator[T]{c: v.newCursor(pos)}}
}

// Begin returns a handle at the first element.
func (v *Vector[T]) Begin() Iterator[T] { return v.iter(0) }

// End returns a handle at the past-the-end position.
func (v *Vector[T]) End() Iterator[T] { return v.iter(v.data.size()) }

// CBegin returns a read-only handle at the first element.
func (v *Vector[T]) CBegin() ConstIterator[T] { return ConstIterator[T]{c: v.newCursor(0)} }

// CEnd returns a read-only handle at the past-the-end position.
func (v *Vector[T]) CEnd() ConstIterator[T] { return ConstIterator[T]{c: v.newCursor(v.data.size())} }

// IterAt returns a handle at index i; i may equal Len.
func (v *Vector[T]) IterAt(i int) Iterator[T] {
	if boundsChecking && (i < 0 || i > v.data.size()) {
		v.fail("IterAt", i, ErrOutOfBounds)
	}
	return v.iter(i)
}

// posOf validates that h is a live handle of v and returns its position.
func (v *Vector[T]) posOf(op string, h Handle[T]) int {
	c := h.handle()
	if boundsChecking {
		if c == nil || c.released {
			v.fail(op, -1, ErrStaleIterator)
		}
		if c.vec != v {
			v.fail(op, c.pos, ErrForeignIterator)
		}
		if c.pos < 0 || c.pos > v.data.size() {
			v.fail(op, c.pos, ErrOutOfBounds)
		}
	}
	return c.pos
}

// complete finishes a structural mutation: it records the reallocation, if
// any, and rebases every registered handle.
func (v *Vector[T]) complete(op string, oldCap int, rb rebase) {
	ctx := context.Background()
	if rb.moved {
		v.gen++
		v.stats.Reallocations++
		observability.LogReallocation(v.logger, v.name, oldCap, v.data.capacity())
		v.metrics.RecordReallocation(ctx, v.name, v.data.capacity())
	}
	if rb.delta != 0 {
		v.metrics.RecordMutation(ctx, v.name, op, rb.delta)
	}

	v.end = v.data.size()
	if rb.noop() {
		return
	}

	n := v.handles.broadcast(rb, v.gen)
	v.stats.Rebases++
	v.stats.HandlesRebased += n
	observability.LogRebase(v.logger, v.name, op, rb.at, rb.delta, n)
	v.metrics.RecordRebase(ctx, v.name, n)
}

// Reserve raises the capacity to at least n. Handles are preserved.
func (v *Vector[T]) Reserve(n int) {
	if boundsChecking && n < 0 {
		v.fail("Reserve", n, ErrNegativeCount)
	}
	oldCap := v.data.capacity()
	moved := v.data.reserve(n)
	v.complete("Reserve", oldCap, rebase{moved: moved})
}

// ShrinkToFit releases unused capacity. Handles are preserved.
func (v *Vector[T]) ShrinkToFit() {
	oldCap := v.data.capacity()
	moved := v.data.shrink()
	v.complete("ShrinkToFit", oldCap, rebase{moved: moved})
}

// Clear removes every element and keeps the capacity.
//
// Clear requires that no handles are registered: there is no element left
// for them to follow. Violations panic unless built with safevec_unchecked,
// in which case outstanding handles are left dangling.
func (v *Vector[T]) Clear() {
	if boundsChecking && v.handles.live() > 0 {
		v.fail("Clear", -1, ErrLiveIterators)
	}
	n := v.data.size()
	v.data.reset()
	v.end = 0
	if n > 0 {
		v.metrics.RecordMutation(context.Background(), v.name, "Clear", -n)
	}
}

// Insert inserts val before pos and returns a new handle at the inserted
// element, which the caller must Release. Handles at or after pos, pos
// included, keep denoting their elements.
func (v *Vector[T]) Insert(pos Handle[T], val T) Iterator[T] {
	i := v.posOf("Insert", pos)
	v.insert("Insert", i, []T{val})
	return v.iter(i)
}

// InsertN inserts count copies of val before pos and returns a new handle at
// the first inserted element (or at pos when count is zero), which the caller
// must Release.
func (v *Vector[T]) InsertN(pos Handle[T], count int, val T) Iterator[T] {
	i := v.posOf("InsertN", pos)
	if boundsChecking && count < 0 {
		v.fail("InsertN", count, ErrNegativeCount)
	}
	if count > 0 {
		oldCap := v.data.capacity()
		moved := v.data.insertN(i, count, val)
		v.complete("InsertN", oldCap, rebase{moved: moved, at: i, delta: count})
	}
	return v.iter(i)
}

// InsertSlice inserts vals before pos and returns a new handle at the first
// inserted element (or at pos when vals is empty), which the caller must
// Release.
func (v *Vector[T]) InsertSlice(pos Handle[T], vals []T) Iterator[T] {
	i := v.posOf("InsertSlice", pos)
	v.insert("InsertSlice", i, vals)
	return v.iter(i)
}

// InsertAt inserts vals before index i; i may equal Len.
func (v *Vector[T]) InsertAt(i int, vals ...T) {
	if boundsChecking && (i < 0 || i > v.data.size()) {
		v.fail("InsertAt", i, ErrIndexOutOfRange)
	}
	v.insert("InsertAt", i, vals)
}

func (v *Vector[T]) insert(op string, i int, vals []T) {
	if len(vals) == 0 {
		return
	}
	oldCap := v.data.capacity()
	moved := v.data.insert(i, vals...)
	v.complete(op, oldCap, rebase{moved: moved, at: i, delta: len(vals)})
}

// Emplace inserts a zero value before pos, lets init fill it in place, and
// returns a new handle at the new element, which the caller must Release.
// init may be nil and must not mutate v.
func (v *Vector[T]) Emplace(pos Handle[T], init func(*T)) Iterator[T] {
	i := v.posOf("Emplace", pos)
	var zero T
	v.insert("Emplace", i, []T{zero})
	if init != nil {
		init(&v.data.buf[i])
	}
	return v.iter(i)
}

// Erase removes the element at pos. Handles that denoted the erased element,
// pos included, move to the element that followed it (or to the end).
//
// The returned handle is pos itself, not a new registration, so the loop
// it = v.Erase(it) holds a single handle throughout.
func (v *Vector[T]) Erase(pos Handle[T]) Iterator[T] {
	i := v.posOf("Erase", pos)
	if boundsChecking && i >= v.data.size() {
		v.fail("Erase", i, ErrOutOfBounds)
	}
	v.erase("Erase", i, i+1)
	return Iterator[T]{ConstIterator[T]{c: pos.handle()}}
}

// EraseRange removes [first, last). Handles inside the range, first
// included, move to the element that followed it. The returned handle is
// first itself.
func (v *Vector[T]) EraseRange(first, last Handle[T]) Iterator[T] {
	i := v.posOf("EraseRange", first)
	j := v.posOf("EraseRange", last)
	if boundsChecking && j < i {
		v.fail("EraseRange", j, ErrOutOfBounds)
	}
	v.erase("EraseRange", i, j)
	return Iterator[T]{ConstIterator[T]{c: first.handle()}}
}

// EraseAt removes the element at index i.
func (v *Vector[T]) EraseAt(i int) {
	v.checkIndex("EraseAt", i)
	v.erase("EraseAt", i, i+1)
}

// EraseRangeAt removes the elements in [i, j).
func (v *Vector[T]) EraseRangeAt(i, j int) {
	if boundsChecking && (i < 0 || j > v.data.size() || j < i) {
		v.fail("EraseRangeAt", i, ErrIndexOutOfRange)
	}
	v.erase("EraseRangeAt", i, j)
}

func (v *Vector[T]) erase(op string, i, j int) {
	if i == j {
		return
	}
	v.data.erase(i, j)
	v.complete(op, v.data.capacity(), rebase{at: i, delta: i - j})
}

// PushBack appends vals. End handles stay at the end.
func (v *Vector[T]) PushBack(vals ...T) {
	v.insert("PushBack", v.data.size(), vals)
}

// EmplaceBack appends a zero value, lets init fill it in place, and returns
// a pointer to it. The pointer is valid until the next structural mutation.
func (v *Vector[T]) EmplaceBack(init func(*T)) *T {
	at := v.data.size()
	var zero T
	v.insert("EmplaceBack", at, []T{zero})
	p := &v.data.buf[at]
	if init != nil {
		init(p)
	}
	return p
}

// PopBack removes and returns the last element. Handles on it move to the end.
func (v *Vector[T]) PopBack() T {
	v.checkNotEmpty("PopBack")
	val := v.data.pop()
	v.complete("PopBack", v.data.capacity(), rebase{at: v.data.size(), delta: -1})
	return val
}

// Resize sets the length to n, appending zero values or truncating.
func (v *Vector[T]) Resize(n int) {
	var zero T
	v.resize("Resize", n, zero)
}

// ResizeWith sets the length to n, appending copies of val or truncating.
func (v *Vector[T]) ResizeWith(n int, val T) {
	v.resize("ResizeWith", n, val)
}

func (v *Vector[T]) resize(op string, n int, val T) {
	if boundsChecking && n < 0 {
		v.fail(op, n, ErrNegativeCount)
	}
	old := v.data.size()
	if n == old {
		return
	}
	oldCap := v.data.capacity()
	moved := v.data.resize(n, val)
	if n > old {
		v.complete(op, oldCap, rebase{moved: moved, at: old, delta: n - old})
		return
	}
	v.complete(op, oldCap, rebase{at: n, delta: n - old})
}

// Swap exchanges the contents of v and other.
//
// Neither vector may have registered handles; see Clear.
func (v *Vector[T]) Swap(other *Vector[T]) {
	if boundsChecking {
		if v.handles.live() > 0 {
			v.fail("Swap", -1, ErrLiveIterators)
		}
		if other.handles.live() > 0 {
			other.fail("Swap", -1, ErrLiveIterators)
		}
	}
	v.data, other.data = other.data, v.data
	v.swapped()
	other.swapped()
}

// SwapSlice exchanges the vector's storage with *s.
//
// The vector may not have registered handles; see Clear.
func (v *Vector[T]) SwapSlice(s *[]T) {
	if boundsChecking && v.handles.live() > 0 {
		v.fail("SwapSlice", -1, ErrLiveIterators)
	}
	v.data.swap(s)
	v.swapped()
}

func (v *Vector[T]) swapped() {
	v.gen++
	v.end = v.data.size()
}

// RemoveIf erases every element for which pred returns true and returns how
// many were removed. Outstanding handles are rebased as usual.
func (v *Vector[T]) RemoveIf(pred func(T) bool) int {
	it := v.Begin()
	defer it.Release()

	removed := 0
	for !it.Done() {
		if pred(it.Get()) {
			it.Erase()
			removed++
			continue
		}
		it.Next()
	}
	return removed
}
