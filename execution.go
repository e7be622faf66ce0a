package spindle

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/casualjim/spindle/internal/native"
	"github.com/casualjim/spindle/internal/promise"
	"github.com/casualjim/spindle/pkg/slogx"
	"github.com/google/uuid"
)

// execution is the record shared by a handle and the thread it started. The
// thread is the only writer of done, nativeID and the promise; the handle only
// reads them. It must never point back at the handle, otherwise an abandoned
// handle would stay reachable for as long as its thread runs.
type execution[T any] struct {
	id        uuid.UUID
	name      string
	keepAlive bool
	started   time.Time

	done     atomic.Bool
	nativeID atomic.Int64
	released atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	future promise.CompletableFuture[T]

	log      *slog.Logger
	limiter  *Limiter
	registry *Registry
}

func newExecution[T any](cfg Config) *execution[T] {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.Must(uuid.NewV7())
	log := cfg.logger.With(slogx.ThreadID(id))
	if cfg.name != "" {
		log = log.With(slogx.ThreadName(cfg.name))
	}
	return &execution[T]{
		id:        id,
		name:      cfg.name,
		keepAlive: cfg.keepAlive,
		ctx:       ctx,
		cancel:    cancel,
		future:    promise.New[T](),
		log:       log,
		limiter:   cfg.limiter,
		registry:  cfg.registry,
	}
}

// start hands the record to a new native thread. The caller has already taken
// a limiter slot; from here on the thread owns the job of giving it back.
func (e *execution[T]) start(routine func(context.Context) (T, error)) {
	e.started = time.Now()
	e.registry.add(e.id, e)
	native.Start(func(tid int) {
		e.nativeID.Store(int64(tid))
		e.run(routine)
	})
}

// run is the body of the entry point. The outcome is recorded, then done is
// raised, then the promise is settled, so a Join that returned always sees
// done == true.
func (e *execution[T]) run(routine func(context.Context) (T, error)) {
	e.log.Debug("thread started", slogx.NativeThread(int(e.nativeID.Load())))

	var (
		value    T
		err      error
		produced bool
	)
	defer func() {
		if !produced {
			// recover is nil when the routine left through runtime.Goexit.
			if r := recover(); r != nil {
				err = newPanicError(r)
			} else {
				err = ErrInvalidReturnValue
			}
		}
		e.done.Store(true)
		if err != nil {
			e.future.Error(err)
		} else {
			e.future.Complete(value)
		}
		e.finish(err)
	}()

	value, err = routine(e.ctx)
	produced = true
}

func (e *execution[T]) finish(err error) {
	e.registry.remove(e.id)
	e.limiter.Release()
	e.cancel()

	attrs := []any{slog.Duration("elapsed", time.Since(e.started))}
	if err != nil {
		attrs = append(attrs, slogx.Error(err))
	}
	e.log.Debug("thread finished", attrs...)
}

func (e *execution[T]) requestCancel() {
	if e.done.Load() {
		return
	}
	e.log.Debug("thread cancel requested")
	e.cancel()
}

// detach is the teardown of a handle, run by Close or by the runtime once an
// unclosed handle is unreachable.
func (e *execution[T]) detach() {
	if !e.released.CompareAndSwap(false, true) {
		return
	}
	e.log.Debug("thread handle released", slog.Bool("keep_alive", e.keepAlive))
	if !e.keepAlive {
		e.requestCancel()
	}
}

func (e *execution[T]) info() Info {
	return Info{
		ID:       e.id,
		Name:     e.name,
		NativeID: int(e.nativeID.Load()),
		Started:  e.started,
	}
}
