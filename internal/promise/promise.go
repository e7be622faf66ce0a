package promise

import (
	"sync"
	"sync/atomic"
)

// CompletableFuture is the write and read side of a single result.
type CompletableFuture[T any] interface {
	Future[T]
	Promise[T]
}

// Promise is the producer side. Only the first Complete or Error call counts.
type Promise[T any] interface {
	Complete(T)
	Error(error)
}

// Future is the consumer side. Get blocks until the promise is settled and
// then keeps returning the same value and error.
type Future[T any] interface {
	Get() (T, error)
}

type futState[T any] struct {
	value T
	err   error
}

type futResult[T any] struct {
	result T
	err    error
	done   bool
}

type future[T any] struct {
	ch     chan futState[T]
	result atomic.Value // holds *futResult[T]
	once   sync.Once
	mu     sync.Mutex
}

// New creates an unsettled future.
func New[T any]() CompletableFuture[T] {
	f := &future[T]{
		ch: make(chan futState[T], 1),
	}
	f.result.Store(&futResult[T]{})
	return f
}

func (f *future[T]) Get() (T, error) {
	res := f.result.Load().(*futResult[T])
	if res.done {
		return res.result, res.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring lock
	res = f.result.Load().(*futResult[T])
	if res.done {
		return res.result, res.err
	}

	r := <-f.ch
	newResult := futResult[T]{
		result: r.value,
		err:    r.err,
		done:   true,
	}
	if r.err != nil {
		var zero T
		newResult.result = zero
	}
	f.result.Store(&newResult)
	return newResult.result, newResult.err
}

func (f *future[T]) Complete(value T) {
	f.once.Do(func() {
		f.ch <- futState[T]{value: value}
	})
}

func (f *future[T]) Error(err error) {
	f.once.Do(func() {
		f.ch <- futState[T]{err: err}
	})
}
