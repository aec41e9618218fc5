/*
Package safevec provides a growable contiguous vector that stays safely
iterable while it is being modified.

# Overview

An ordinary slice gives no help to code that iterates over a collection and
modifies it at the same time: an insert shifts the elements under every index
held by the loop, and an append may move the whole array. safevec.Vector keeps
a registry of every outstanding iterator handle and repositions each of them
after every structural mutation, so a handle always denotes the element it
denoted before the mutation.

# Basic Usage

	v := safevec.From([]int{10, 20, 30})

	it := v.IterAt(1) // at 20
	defer it.Release()

	v.InsertAt(0, 0)        // [0 10 20 30]
	fmt.Println(it.Get())   // 20
	fmt.Println(it.Index()) // 2

Handles must be released when no longer needed. A handle that is dropped
without Release is forgotten once the garbage collector reclaims it, because
the registry only holds weak references, but until then it still counts as
live for Clear and Swap.

Insert, InsertN, InsertSlice, and Emplace return new handles that need their
own Release. Erase and EraseRange return the handle they were given, so
it = v.Erase(it) never accumulates registrations.

# Mutating While Iterating

Drive the loop with a handle and mutate through the vector or the handle:

	it := entities.Begin()
	defer it.Release()
	for !it.Done() {
	    e := it.Get()
	    if e.Expired() {
	        it.Erase() // it now denotes the next entity
	        continue
	    }
	    if e.Splits() {
	        entities.PushBack(e.Child()) // visited later in this loop
	    }
	    it.Next()
	}

All and Values wrap the same pattern for range-over-func loops.

# Rebase Rules

After an insertion of n elements at index i, handles at positions >= i move
right by n. A handle exactly at i keeps denoting the element that was there.

After a removal of [i, i+n), handles at positions >= i+n move left by n and
handles inside the removed range move to i, which is the element that
followed the range or the end sentinel. This is the single-element erase rule
applied uniformly to ranges.

Reallocation (growth, Reserve, ShrinkToFit) leaves every position unchanged.
Reserve and ShrinkToFit that do not reallocate do no rebase work at all.

# Preconditions

Violating a precondition is a programming error and panics with an
*AssertionError wrapping one of the sentinel errors:

  - ErrIndexOutOfRange: element access outside [0, Len())
  - ErrOutOfBounds: dereferencing or moving a handle outside its valid range
  - ErrForeignIterator: comparing handles of different vectors
  - ErrLiveIterators: Clear, Swap, or SwapSlice with handles outstanding
  - ErrStaleIterator: using a released handle, or one that missed a rebase
  - ErrEmpty, ErrNegativeCount

Building with -tags safevec_unchecked compiles these checks out. Go's own
slice bounds checks still apply.

# Thread Safety

A Vector and its handles must be used from a single goroutine at a time.
*/
package safevec
