package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/casualjim/spindle"
	"github.com/casualjim/spindle/internal/config"
	"github.com/casualjim/spindle/pkg/slogx"
	"github.com/fogfish/opts"
	"github.com/k0kubun/pp/v3"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var errScenario = errors.New("scenario failure")

type spindleOption = opts.Option[spindle.Config]

// Result is the outcome of one scenario.
type Result struct {
	OK      bool          `json:"ok"`
	Detail  string        `json:"detail"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Report keeps scenarios in the order they ran.
type Report struct {
	Scenarios *orderedmap.OrderedMap[string, Result] `json:"scenarios"`
}

func (r *Report) Passed() bool {
	for pair := r.Scenarios.Oldest(); pair != nil; pair = pair.Next() {
		if !pair.Value.OK {
			return false
		}
	}
	return true
}

type scenario struct {
	name string
	run  func() (string, error)
}

type runner struct {
	limiter  *spindle.Limiter
	registry *spindle.Registry
	dump     io.Writer
}

func newRunner(cfg config.Config) *runner {
	return &runner{
		limiter:  spindle.NewLimiter(cfg.MaxThreads),
		registry: spindle.NewRegistry(),
	}
}

func (r *runner) runAll() *Report {
	return r.runScenarios(r.scenarios())
}

func (r *runner) runScenarios(scenarios []scenario) *Report {
	report := &Report{Scenarios: orderedmap.New[string, Result]()}
	for _, sc := range scenarios {
		start := time.Now()
		detail, err := sc.run()
		res := Result{OK: err == nil, Detail: detail, Elapsed: time.Since(start)}
		if err != nil {
			res.Detail = err.Error()
			slog.Warn("scenario failed", slog.String("scenario", sc.name), slogx.Error(err))
		}
		report.Scenarios.Set(sc.name, res)
	}
	return report
}

func (r *runner) options(name string) []spindleOption {
	return []spindleOption{spindle.Name(name), spindle.WithLimiter(r.limiter), spindle.WithRegistry(r.registry)}
}

func (r *runner) scenarios() []scenario {
	return []scenario{
		{name: "join", run: r.join},
		{name: "failure", run: r.failure},
		{name: "poll", run: r.poll},
		{name: "contention", run: r.contention},
		{name: "condition", run: r.condition},
		{name: "cancel", run: r.cancel},
	}
}

func (r *runner) join() (string, error) {
	arr := []int{1, 2, 3, 4, 5}
	th, err := spindle.Spawn(func() int {
		total := 0
		for _, v := range arr {
			total += v
		}
		return total
	}, r.options("join")...)
	if err != nil {
		return "", err
	}
	sum, err := th.Join()
	if err != nil {
		return "", err
	}
	if sum != 15 {
		return "", fmt.Errorf("expected 15, got %d", sum)
	}
	return fmt.Sprintf("sum=%d native_tid=%d", sum, th.NativeID()), nil
}

func (r *runner) failure() (string, error) {
	th, err := spindle.Go(func() (int, error) {
		return 0, errScenario
	}, r.options("failure")...)
	if err != nil {
		return "", err
	}
	_, err = th.Join()
	if !errors.Is(err, errScenario) {
		return "", fmt.Errorf("expected %v, got %v", errScenario, err)
	}
	return "error propagated: " + err.Error(), nil
}

func (r *runner) poll() (string, error) {
	th, err := spindle.Spawn(func() int {
		time.Sleep(20 * time.Millisecond)
		return 15
	}, r.options("poll")...)
	if err != nil {
		return "", err
	}
	polls := 0
	for !th.Done() {
		polls++
		time.Sleep(5 * time.Millisecond)
	}
	v, err := th.Join()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("value=%d after %d polls", v, polls), nil
}

func (r *runner) contention() (string, error) {
	const perThread = 10000
	lock := spindle.NewMutex()
	var results []int

	appender := func() int {
		for i := 1; i <= perThread; i++ {
			lock.Acquire(func() {
				results = append(results, i)
			})
		}
		return perThread
	}

	// both appenders queue up on the lock until it is released below
	lock.Lock()
	a, err := spindle.Spawn(appender, r.options("contention-a")...)
	if err != nil {
		lock.Unlock()
		return "", err
	}
	b, err := spindle.Spawn(appender, r.options("contention-b")...)
	if err != nil {
		lock.Unlock()
		return "", err
	}
	if r.dump != nil {
		pp.Fprintln(r.dump, r.registry.Snapshot())
	}
	lock.Unlock()
	for _, th := range []*spindle.Thread[int]{a, b} {
		if _, err := th.Join(); err != nil {
			return "", err
		}
	}

	if len(results) != 2*perThread {
		return "", fmt.Errorf("expected %d entries, got %d", 2*perThread, len(results))
	}
	return fmt.Sprintf("entries=%d", len(results)), nil
}

func (r *runner) condition() (string, error) {
	const delay = 50 * time.Millisecond
	lock := spindle.NewMutex()
	cond := spindle.NewCondition()
	ready := false

	start := time.Now()
	signaller, err := spindle.Spawn(func() bool {
		time.Sleep(delay)
		lock.Acquire(func() { ready = true })
		cond.Resolve(false)
		return true
	}, r.options("condition")...)
	if err != nil {
		return "", err
	}

	lock.Acquire(func() {
		for !ready {
			lock.Wait(cond)
		}
	})
	blocked := time.Since(start)
	if _, err := signaller.Join(); err != nil {
		return "", err
	}
	if blocked < delay {
		return "", fmt.Errorf("woke after %s, before the %s delay", blocked, delay)
	}
	return fmt.Sprintf("blocked=%s", blocked.Round(time.Millisecond)), nil
}

func (r *runner) cancel() (string, error) {
	options := append(r.options("cancel"), spindle.KeepAlive(false))
	th, err := spindle.SpawnContext(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, options...)
	if err != nil {
		return "", err
	}
	if err := th.Close(); err != nil {
		return "", err
	}
	_, err = th.Join()
	if !errors.Is(err, context.Canceled) {
		return "", fmt.Errorf("expected cancellation, got %v", err)
	}
	return "canceled on close", nil
}
