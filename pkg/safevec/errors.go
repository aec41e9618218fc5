package safevec

import (
	"errors"
	"fmt"
)

// Sentinel errors carried by AssertionError panics.
var (
	// ErrIndexOutOfRange indicates element access outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOutOfBounds indicates an iterator moved or dereferenced outside its valid range.
	ErrOutOfBounds = errors.New("iterator out of bounds")

	// ErrForeignIterator indicates two iterators of different vectors were compared,
	// differenced, or an iterator was passed to a vector it does not belong to.
	ErrForeignIterator = errors.New("iterator belongs to a different vector")

	// ErrLiveIterators indicates Clear or Swap was called with iterators outstanding.
	ErrLiveIterators = errors.New("live iterators outstanding")

	// ErrStaleIterator indicates use of a released iterator, or one that missed a rebase.
	ErrStaleIterator = errors.New("stale iterator")

	// ErrEmpty indicates Front, Back, or PopBack on an empty vector.
	ErrEmpty = errors.New("vector is empty")

	// ErrNegativeCount indicates a negative size or count argument.
	ErrNegativeCount = errors.New("negative count")
)

// AssertionError is the panic value raised when a precondition is violated.
// These are programming errors; they are only detected when the package is
// built without the safevec_unchecked tag.
type AssertionError struct {
	// Op is the operation that detected the violation (e.g. "Clear", "Iterator.Get").
	Op string
	// Index is the offending position, or -1 when not applicable.
	Index int
	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("safevec: %s: %v (index %d)", e.Op, e.Err, e.Index)
	}
	return fmt.Sprintf("safevec: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *AssertionError) Unwrap() error {
	return e.Err
}
