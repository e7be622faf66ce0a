package spindle

import "sync"

// Condition is a rendezvous point for goroutines waiting on some state guarded
// by a Mutex. Unlike sync.Cond it is not bound to a lock: the mutex is picked
// per call to Mutex.Wait.
type Condition struct {
	mu      sync.Mutex
	waiters []chan struct{}
}

func NewCondition() *Condition {
	return &Condition{}
}

// Resolve wakes every waiter when globally is true and the longest waiting one
// otherwise. Without waiters it does nothing; the signal is not remembered.
func (c *Condition) Resolve(globally bool) {
	c.mu.Lock()
	var woken []chan struct{}
	switch {
	case len(c.waiters) == 0:
	case globally:
		woken = c.waiters
		c.waiters = nil
	default:
		woken = []chan struct{}{c.waiters[0]}
		c.waiters[0] = nil
		c.waiters = c.waiters[1:]
	}
	c.mu.Unlock()

	for _, ch := range woken {
		close(ch)
	}
}

// Signal wakes one waiter.
func (c *Condition) Signal() { c.Resolve(false) }

// Broadcast wakes all waiters.
func (c *Condition) Broadcast() { c.Resolve(true) }

// Waiting returns the number of goroutines currently blocked on c.
func (c *Condition) Waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func (c *Condition) enqueue() chan struct{} {
	ch := make(chan struct{})
	c.mu.Lock()
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()
	return ch
}
