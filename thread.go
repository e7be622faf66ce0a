package spindle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fogfish/opts"
	"github.com/google/uuid"
)

var errNilRoutine = errors.New("spindle: nil routine")

var _ io.Closer = (*Thread[struct{}])(nil)

// Thread is a handle to a routine running on its own OS thread.
//
// The routine starts before the spawn function returns. Its result, or the
// error it failed with, is kept until Join reads it; Join may be called any
// number of times and always reports the same outcome.
type Thread[T any] struct {
	exec    *execution[T]
	cleanup runtime.Cleanup
}

// Spawn starts routine on a new OS thread.
func Spawn[T any](routine func() T, options ...opts.Option[Config]) (*Thread[T], error) {
	if routine == nil {
		return nil, errNilRoutine
	}
	return spawn(func(context.Context) (T, error) {
		return routine(), nil
	}, options)
}

// Go starts a routine that can fail on a new OS thread. The error it returns
// is handed to the caller of Join.
func Go[T any](routine func() (T, error), options ...opts.Option[Config]) (*Thread[T], error) {
	if routine == nil {
		return nil, errNilRoutine
	}
	return spawn(func(context.Context) (T, error) {
		return routine()
	}, options)
}

// SpawnContext starts routine on a new OS thread. The context is canceled by
// Cancel, by Close when keep-alive is off, and once the routine has returned.
func SpawnContext[T any](routine func(context.Context) (T, error), options ...opts.Option[Config]) (*Thread[T], error) {
	return spawn(routine, options)
}

func spawn[T any](routine func(context.Context) (T, error), options []opts.Option[Config]) (*Thread[T], error) {
	if routine == nil {
		return nil, errNilRoutine
	}
	cfg, err := newConfig(options)
	if err != nil {
		return nil, fmt.Errorf("spindle: invalid option: %w", err)
	}
	if !cfg.limiter.TryAcquire() {
		return nil, ErrNotEnoughResources
	}

	exec := newExecution[T](cfg)
	exec.start(routine)

	t := &Thread[T]{exec: exec}
	t.cleanup = runtime.AddCleanup(t, (*execution[T]).detach, exec)
	return t, nil
}

// Join blocks until the routine has finished and returns its result.
//
// A routine that panicked yields a *PanicError, one that left through
// runtime.Goexit yields ErrInvalidReturnValue.
func (t *Thread[T]) Join() (T, error) {
	return t.exec.future.Get()
}

// Wait is an alias for Join.
func (t *Thread[T]) Wait() (T, error) {
	return t.Join()
}

// Done reports whether the routine has finished. It never blocks and nothing
// is delivered when it flips, so callers poll it with their own backoff.
func (t *Thread[T]) Done() bool {
	return t.exec.done.Load()
}

// Cancel requests cancellation of the routine. Only routines started with
// SpawnContext can observe it, through their context. It is safe to call any
// number of times and does nothing once the routine has finished.
func (t *Thread[T]) Cancel() {
	t.exec.requestCancel()
}

// Close releases the handle without waiting for the thread, which keeps
// running to completion unless keep-alive was turned off, in which case it
// is also canceled. Join still works after Close. Handles that are never
// closed get the same treatment when the garbage collector reclaims them.
//
// Close never fails; the error result is there so a Thread is an io.Closer.
func (t *Thread[T]) Close() error {
	t.cleanup.Stop()
	t.exec.detach()
	return nil
}

// ID returns the handle's unique id.
func (t *Thread[T]) ID() uuid.UUID {
	return t.exec.id
}

func (t *Thread[T]) Name() string {
	return t.exec.name
}

// NativeID returns the OS thread id the routine runs on. It is 0 until the
// thread has started, and always 0 on platforms without thread ids.
func (t *Thread[T]) NativeID() int {
	return int(t.exec.nativeID.Load())
}

// Context returns the context handed to SpawnContext routines.
func (t *Thread[T]) Context() context.Context {
	return t.exec.ctx
}
