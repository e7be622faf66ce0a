package spindle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForWaiters spins until n goroutines are blocked on c.
func waitForWaiters(t *testing.T, c *Condition, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.Waiting() == n
	}, 5*time.Second, time.Millisecond)
}

func TestCondition(t *testing.T) {
	t.Run("waits for the condition", func(t *testing.T) {
		const delay = 100 * time.Millisecond
		start := time.Now()

		condition := NewCondition()
		lock := NewMutex()
		resolved := false

		signaller, err := Spawn(func() struct{} {
			time.Sleep(delay)
			lock.Acquire(func() {
				resolved = true
			})
			condition.Resolve(false)
			return struct{}{}
		})
		require.NoError(t, err)

		lock.Acquire(func() {
			for !resolved {
				lock.Wait(condition)
			}
		})

		assert.GreaterOrEqual(t, time.Since(start), delay)
		_, err = signaller.Join()
		require.NoError(t, err)
	})

	t.Run("signal wakes one waiter", func(t *testing.T) {
		condition := NewCondition()
		lock := NewMutex()
		var woken sync.WaitGroup
		woken.Add(2)
		count := 0

		for range 2 {
			_, err := Spawn(func() struct{} {
				lock.Acquire(func() {
					lock.Wait(condition)
					count++
				})
				woken.Done()
				return struct{}{}
			})
			require.NoError(t, err)
		}
		waitForWaiters(t, condition, 2)

		condition.Signal()
		waitForWaiters(t, condition, 1)
		assert.Eventually(t, func() bool {
			return AcquireValue(lock, func() int { return count }) == 1
		}, 5*time.Second, time.Millisecond)

		condition.Signal()
		woken.Wait()
		assert.Equal(t, 2, count)
	})

	t.Run("signal wakes the longest waiting goroutine first", func(t *testing.T) {
		condition := NewCondition()
		lock := NewMutex()
		order := make(chan int, 2)

		waiter := func(n int) {
			_, err := Spawn(func() struct{} {
				lock.Acquire(func() {
					lock.Wait(condition)
				})
				order <- n
				return struct{}{}
			})
			require.NoError(t, err)
		}

		waiter(1)
		waitForWaiters(t, condition, 1)
		waiter(2)
		waitForWaiters(t, condition, 2)

		condition.Signal()
		assert.Equal(t, 1, <-order)
		waitForWaiters(t, condition, 1)

		condition.Signal()
		assert.Equal(t, 2, <-order)
	})

	t.Run("broadcast wakes every waiter", func(t *testing.T) {
		condition := NewCondition()
		lock := NewMutex()
		const n = 5

		threads := make([]*Thread[bool], 0, n)
		for range n {
			th, err := Spawn(func() bool {
				lock.Acquire(func() {
					lock.Wait(condition)
				})
				return true
			})
			require.NoError(t, err)
			threads = append(threads, th)
		}
		waitForWaiters(t, condition, n)

		condition.Resolve(true)
		for _, th := range threads {
			woke, err := th.Join()
			require.NoError(t, err)
			assert.True(t, woke)
		}
		assert.Zero(t, condition.Waiting())
	})

	t.Run("resolve without waiters is dropped", func(t *testing.T) {
		condition := NewCondition()
		assert.NotPanics(t, func() {
			condition.Resolve(false)
			condition.Resolve(true)
		})
		assert.Zero(t, condition.Waiting())

		lock := NewMutex()
		th, err := Spawn(func() struct{} {
			lock.Acquire(func() {
				lock.Wait(condition)
			})
			return struct{}{}
		})
		require.NoError(t, err)
		waitForWaiters(t, condition, 1)
		assert.False(t, th.Done())

		condition.Broadcast()
		_, err = th.Join()
		require.NoError(t, err)
	})

	t.Run("wait releases the mutex", func(t *testing.T) {
		condition := NewCondition()
		lock := NewMutex()

		th, err := Spawn(func() struct{} {
			lock.Acquire(func() {
				lock.Wait(condition)
			})
			return struct{}{}
		})
		require.NoError(t, err)
		waitForWaiters(t, condition, 1)

		// the waiter holds no lock while blocked
		lock.Acquire(func() {
			condition.Signal()
		})
		_, err = th.Join()
		require.NoError(t, err)
	})
}
