package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fluxcron/dispatcher/di"
)

// ModuleOption configures the scheduler module.
type ModuleOption func(*moduleConfig)

type moduleConfig struct {
	engine Config
}

// WithWorkers sets the worker pool size. Default is 10.
func WithWorkers(n int) ModuleOption {
	return func(c *moduleConfig) {
		c.engine.Workers = n
	}
}

// WithQueueCapacity bounds the dispatch channel. Default is 25.
func WithQueueCapacity(n int) ModuleOption {
	return func(c *moduleConfig) {
		c.engine.QueueCapacity = n
	}
}

// WithPollInterval sets the backpressure retry interval. Default is 100ms.
func WithPollInterval(d time.Duration) ModuleOption {
	return func(c *moduleConfig) {
		c.engine.PollInterval = d
	}
}

// NewModule creates a di.Module that registers a pgx-backed TriggerStore
// and an eager *Engine participating in the app lifecycle.
//
// It requires a *pgxpool.Pool to already be registered. The engine's
// Handler must be set before the app starts, typically by the executor
// module.
func NewModule(opts ...ModuleOption) di.Module {
	cfg := &moduleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return di.NewModuleFunc("scheduler", func(c *di.Container) error {
		if err := di.For[TriggerStore](c).Provider(func(c *di.Container) (TriggerStore, error) {
			pool, err := di.Resolve[*pgxpool.Pool](c)
			if err != nil {
				return nil, fmt.Errorf("scheduler: resolve pgxpool.Pool: %w", err)
			}

			logger := slog.Default()
			if l, err := di.Resolve[*slog.Logger](c); err == nil {
				logger = l
			}

			return NewPGTriggerStore(pool, logger), nil
		}); err != nil {
			return fmt.Errorf("register trigger store: %w", err)
		}

		if err := di.For[*Engine](c).
			Eager().
			Provider(func(c *di.Container) (*Engine, error) {
				store, err := di.Resolve[TriggerStore](c)
				if err != nil {
					return nil, fmt.Errorf("scheduler: resolve trigger store: %w", err)
				}

				logger := slog.Default()
				if l, err := di.Resolve[*slog.Logger](c); err == nil {
					logger = l
				}

				return NewEngine(store, logger, cfg.engine), nil
			}); err != nil {
			return fmt.Errorf("register scheduler engine: %w", err)
		}

		return nil
	})
}
