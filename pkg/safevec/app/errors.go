package app

import (
	"errors"
	"fmt"
)

// ErrLifecycle indicates a lifecycle method was called out of order.
// The order is New, Init, Run (optional, once), Shutdown.
var ErrLifecycle = errors.New("lifecycle method called out of order")

// ErrUnknownModel indicates an entity referenced a model that could not be
// resolved.
var ErrUnknownModel = errors.New("unknown model")

// PhaseError wraps a failure with the lifecycle phase it happened in.
type PhaseError struct {
	// Phase is "init", "run", or "shutdown".
	Phase string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PhaseError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised while updating entities.
type PanicError struct {
	// Tick is the tick that panicked.
	Tick int
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("tick %d panicked: %v", e.Tick, e.Value)
}

// Unwrap exposes the panic value when it is an error, such as a
// *safevec.AssertionError.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
