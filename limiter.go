package spindle

import (
	"log/slog"
	"sync/atomic"

	"github.com/casualjim/spindle/internal/config"
	"github.com/casualjim/spindle/pkg/slogx"
	"golang.org/x/sync/semaphore"
)

// Limiter bounds how many spindle threads run at the same time. Spawning never
// waits for a slot: an exhausted limiter makes the spawn fail with
// ErrNotEnoughResources.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int64
	inUse    atomic.Int64
}

// NewLimiter creates a limiter with n slots. It panics when n is not positive.
func NewLimiter(n int64) *Limiter {
	if n < 1 {
		panic("spindle: limiter capacity must be positive")
	}
	return &Limiter{
		sem:      semaphore.NewWeighted(n),
		capacity: n,
	}
}

// TryAcquire takes a slot if one is free.
func (l *Limiter) TryAcquire() bool {
	if !l.sem.TryAcquire(1) {
		return false
	}
	l.inUse.Add(1)
	return true
}

// Release returns a slot taken by TryAcquire.
func (l *Limiter) Release() {
	l.inUse.Add(-1)
	l.sem.Release(1)
}

func (l *Limiter) InUse() int64 {
	return l.inUse.Load()
}

func (l *Limiter) Capacity() int64 {
	return l.capacity
}

var defaultLimiter atomic.Pointer[Limiter]

// DefaultLimiter returns the process-wide limiter. On first use it is sized
// from SPINDLE_MAX_THREADS, falling back to the built-in default when the
// variable is unset or invalid.
func DefaultLimiter() *Limiter {
	if l := defaultLimiter.Load(); l != nil {
		return l
	}
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Warn("ignoring invalid thread limit, using the default",
			slogx.LoggerName("spindle"),
			slog.Int64("max_threads", config.DefaultMaxThreads),
			slogx.Error(err))
		cfg = config.Default()
	}
	defaultLimiter.CompareAndSwap(nil, NewLimiter(cfg.MaxThreads))
	return defaultLimiter.Load()
}

// SetDefaultLimiter replaces the process-wide limiter. Threads already running
// keep releasing their slot into the limiter they were started with.
func SetDefaultLimiter(l *Limiter) {
	if l == nil {
		panic("spindle: nil limiter")
	}
	defaultLimiter.Store(l)
}
