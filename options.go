package spindle

import (
	"log/slog"

	"github.com/casualjim/spindle/pkg/slogx"
	"github.com/fogfish/opts"
)

// Config holds the per-thread settings applied by the spawn functions.
type Config struct {
	keepAlive bool
	name      string
	logger    *slog.Logger
	limiter   *Limiter
	registry  *Registry
}

var (
	// KeepAlive controls whether releasing the handle leaves the thread
	// running (true, the default) or also requests its cancellation.
	KeepAlive = opts.ForName[Config, bool]("keepAlive")

	// Name labels the thread in logs and registry snapshots.
	Name = opts.ForName[Config, string]("name")

	// Logger replaces the default logger for lifecycle records.
	Logger = opts.ForName[Config, *slog.Logger]("logger")

	// WithLimiter bounds the thread against a specific limiter instead of
	// DefaultLimiter.
	WithLimiter = opts.ForName[Config, *Limiter]("limiter")

	// WithRegistry tracks the thread in a specific registry instead of
	// DefaultRegistry.
	WithRegistry = opts.ForName[Config, *Registry]("registry")
)

func newConfig(options []opts.Option[Config]) (Config, error) {
	cfg := Config{keepAlive: true}
	if err := opts.Apply(&cfg, options); err != nil {
		return Config{}, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default().With(slogx.LoggerName("spindle"))
	}
	if cfg.limiter == nil {
		cfg.limiter = DefaultLimiter()
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	return cfg, nil
}
