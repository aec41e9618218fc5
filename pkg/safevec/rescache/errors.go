package rescache

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every error Lookup returns.
var ErrNotFound = errors.New("resource not found")

// LoadError reports a failed load. It matches both ErrNotFound and the
// loader's own error under errors.Is.
type LoadError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Name, e.Err)
}

// Unwrap returns ErrNotFound and the underlying cause.
func (e *LoadError) Unwrap() []error {
	return []error{ErrNotFound, e.Err}
}
