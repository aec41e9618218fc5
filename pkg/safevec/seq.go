package safevec

import "iter"

// All returns an iterator over index/value pairs that tolerates structural
// mutation of v from inside the loop body.
//
// The walk is driven by a registered handle, so:
//   - erasing the current element continues with the element that followed it
//   - elements inserted before the current one are not visited
//   - elements inserted after the current one are visited
//
// Clear and Swap may not be called from the loop body.
//
//	for i, e := range entities.All() {
//	    if e.Expired() {
//	        entities.EraseAt(i)
//	    }
//	}
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := v.CBegin()
		defer it.Release()

		c := it.c
		for !it.Done() {
			c.displaced = false
			if !yield(c.pos, v.data.buf[c.pos]) {
				return
			}
			if !c.displaced {
				it.Next()
			}
		}
	}
}

// Values returns an iterator over the elements with the same mutation
// tolerance as All.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, val := range v.All() {
			if !yield(val) {
				return
			}
		}
	}
}
