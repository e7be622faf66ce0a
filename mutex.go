package spindle

import "sync"

// Mutex is a mutual exclusion lock. The zero value is an unlocked mutex.
//
// Unlocking a Mutex that is not locked is a fatal runtime error. A Mutex must
// not be copied after first use.
type Mutex struct {
	mu sync.Mutex
}

func NewMutex() *Mutex {
	return &Mutex{}
}

// Lock blocks until the calling goroutine holds the mutex.
func (m *Mutex) Lock() {
	m.mu.Lock()
}

func (m *Mutex) Unlock() {
	m.mu.Unlock()
}

// Acquire holds the mutex for the duration of fn. The mutex is released
// exactly once, also when fn panics.
func (m *Mutex) Acquire(fn func()) {
	m.Lock()
	defer m.Unlock()
	fn()
}

// AcquireValue is Acquire for closures that produce a value.
func AcquireValue[T any](m *Mutex, fn func() T) T {
	m.Lock()
	defer m.Unlock()
	return fn()
}

// Wait atomically releases m and suspends the caller until c is resolved, then
// locks m again before returning. The caller must hold m. Wake-ups carry no
// guarantee about the state they were meant for, so check the condition in a
// loop:
//
//	m.Lock()
//	for !ready {
//		m.Wait(c)
//	}
//	m.Unlock()
func (m *Mutex) Wait(c *Condition) {
	ch := c.enqueue()
	m.Unlock()
	<-ch
	m.Lock()
}
