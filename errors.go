package spindle

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrNotEnoughResources is returned by the spawn functions when the
	// limiter has no free thread slot. No thread is started.
	ErrNotEnoughResources = errors.New("spindle: not enough resources to start thread")

	// ErrInvalidReturnValue is returned by Join when the thread finished
	// without producing a result, which happens when the routine leaves
	// through runtime.Goexit.
	ErrInvalidReturnValue = errors.New("spindle: thread finished without a result")
)

// PanicError is the failure recorded for a routine that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("spindle: routine panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
