/*
Package spindle runs typed closures on dedicated OS threads and coordinates
them with a mutex and a condition variable.

Every spawned routine gets its own OS thread for its whole life. The handle
returned by the spawn functions is typed by the routine's result, so results
and failures cross back to the caller without any type assertions:

	th, err := spindle.Spawn(func() int {
		return 1 + 2 + 3 + 4 + 5
	})
	if err != nil {
		// the limiter had no free slot: spindle.ErrNotEnoughResources
	}
	sum, err := th.Join() // 15, nil

Routines that can fail are started with Go; the error they return comes out
of Join unchanged. A panic in a routine is recovered and reported as a
*PanicError instead of taking the process down.

# Lifecycle

  - Spawn, Go, SpawnContext: start the routine before returning.
  - Done: non-blocking completion flag, for polling loops.
  - Join / Wait: block until the routine finished and return its outcome.
    The outcome is cached, so repeated calls return the same thing.
  - Cancel: request cancellation. Only SpawnContext routines can see it.
  - Close: release the handle. With KeepAlive(false) this also cancels.
    Handles that are dropped without Close are released by the garbage
    collector.

# Coordination

Mutex and Condition are thin wrappers. A Condition is associated with a
Mutex only for the duration of Mutex.Wait:

	mu := spindle.NewMutex()
	cond := spindle.NewCondition()

	mu.Acquire(func() {
		for !ready {
			mu.Wait(cond)
		}
	})

# Resources

The number of threads running at once is bounded by a Limiter, sized from
SPINDLE_MAX_THREADS for the process-wide default. Running threads are listed
by a Registry.
*/
package spindle
