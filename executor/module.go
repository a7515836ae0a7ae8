package executor

import (
	"fmt"
	"log/slog"

	"github.com/fluxcron/dispatcher/di"
	"github.com/fluxcron/dispatcher/eventbus"
	"github.com/fluxcron/dispatcher/jobstore"
	"github.com/fluxcron/dispatcher/publisher"
	"github.com/fluxcron/dispatcher/records"
	"github.com/fluxcron/dispatcher/scheduler"
	"github.com/fluxcron/dispatcher/timezone"
)

// NewModule creates a di.Module that registers an eager *Executor and
// installs it as the scheduler engine's fire handler.
//
// It requires jobstore.Store, records.Source, publisher.Publisher,
// *timezone.Service, and *scheduler.Engine to be registered. The
// eventbus is optional.
func NewModule() di.Module {
	return di.NewModuleFunc("executor", func(c *di.Container) error {
		if err := di.For[*Executor](c).
			Eager().
			Provider(func(c *di.Container) (*Executor, error) {
				store, err := di.Resolve[jobstore.Store](c)
				if err != nil {
					return nil, fmt.Errorf("executor: resolve job store: %w", err)
				}
				source, err := di.Resolve[records.Source](c)
				if err != nil {
					return nil, fmt.Errorf("executor: resolve record source: %w", err)
				}
				pub, err := di.Resolve[publisher.Publisher](c)
				if err != nil {
					return nil, fmt.Errorf("executor: resolve publisher: %w", err)
				}
				zones, err := di.Resolve[*timezone.Service](c)
				if err != nil {
					return nil, fmt.Errorf("executor: resolve timezone service: %w", err)
				}
				engine, err := di.Resolve[*scheduler.Engine](c)
				if err != nil {
					return nil, fmt.Errorf("executor: resolve scheduler engine: %w", err)
				}

				var bus *eventbus.EventBus
				if b, err := di.Resolve[*eventbus.EventBus](c); err == nil {
					bus = b
				}

				logger := slog.Default()
				if l, err := di.Resolve[*slog.Logger](c); err == nil {
					logger = l
				}

				ex := New(store, source, pub, zones, bus, logger)
				engine.SetHandler(ex.Execute)
				return ex, nil
			}); err != nil {
			return fmt.Errorf("register executor: %w", err)
		}
		return nil
	})
}
