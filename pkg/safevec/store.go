package safevec

import "slices"

// store is the backing store: a contiguous slice owned exclusively by one
// Vector. Every mutating method reports whether the underlying array was
// reallocated, which is the only way element addresses change.
type store[T any] struct {
	buf []T
}

func (s *store[T]) size() int     { return len(s.buf) }
func (s *store[T]) capacity() int { return cap(s.buf) }

// grow makes room for n more elements.
func (s *store[T]) grow(n int) bool {
	if len(s.buf)+n <= cap(s.buf) {
		return false
	}
	s.buf = slices.Grow(s.buf, n)
	return true
}

// reserve raises capacity to at least n.
func (s *store[T]) reserve(n int) bool {
	if n <= cap(s.buf) {
		return false
	}
	return s.grow(n - len(s.buf))
}

// shrink reallocates so that capacity equals length.
func (s *store[T]) shrink() bool {
	if cap(s.buf) == len(s.buf) {
		return false
	}
	if len(s.buf) == 0 {
		s.buf = nil
		return true
	}
	buf := make([]T, len(s.buf))
	copy(buf, s.buf)
	s.buf = buf
	return true
}

// insert places vals at index i, shifting the tail right.
func (s *store[T]) insert(i int, vals ...T) bool {
	moved := s.grow(len(vals))
	s.buf = slices.Insert(s.buf, i, vals...)
	return moved
}

// insertN places n copies of v at index i.
func (s *store[T]) insertN(i, n int, v T) bool {
	moved := s.grow(n)
	old := len(s.buf)
	s.buf = s.buf[:old+n]
	copy(s.buf[i+n:], s.buf[i:old])
	for j := i; j < i+n; j++ {
		s.buf[j] = v
	}
	return moved
}

// erase removes [i, j). Never reallocates.
func (s *store[T]) erase(i, j int) {
	s.buf = slices.Delete(s.buf, i, j)
}

// push appends vals.
func (s *store[T]) push(vals ...T) bool {
	moved := s.grow(len(vals))
	s.buf = append(s.buf, vals...)
	return moved
}

// pop removes and returns the last element.
func (s *store[T]) pop() T {
	last := len(s.buf) - 1
	v := s.buf[last]
	var zero T
	s.buf[last] = zero
	s.buf = s.buf[:last]
	return v
}

// resize sets the length to n, filling new slots with v.
func (s *store[T]) resize(n int, v T) bool {
	old := len(s.buf)
	if n <= old {
		clear(s.buf[n:])
		s.buf = s.buf[:n]
		return false
	}
	moved := s.grow(n - old)
	s.buf = s.buf[:n]
	for j := old; j < n; j++ {
		s.buf[j] = v
	}
	return moved
}

// reset drops every element but keeps the allocation.
func (s *store[T]) reset() {
	clear(s.buf)
	s.buf = s.buf[:0]
}

// swap exchanges storage with an unmanaged slice.
func (s *store[T]) swap(other *[]T) {
	s.buf, *other = *other, s.buf
}
