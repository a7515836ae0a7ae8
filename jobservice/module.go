package jobservice

import (
	"fmt"
	"log/slog"

	"github.com/fluxcron/dispatcher/di"
	"github.com/fluxcron/dispatcher/jobstore"
	"github.com/fluxcron/dispatcher/scheduler"
	"github.com/fluxcron/dispatcher/timezone"
)

// NewModule creates a di.Module that registers a *Service singleton.
//
// It requires jobstore.Store, *scheduler.Engine, and *timezone.Service
// to be registered.
func NewModule() di.Module {
	return di.NewModuleFunc("jobservice", func(c *di.Container) error {
		if err := di.For[*Service](c).Provider(func(c *di.Container) (*Service, error) {
			store, err := di.Resolve[jobstore.Store](c)
			if err != nil {
				return nil, fmt.Errorf("jobservice: resolve job store: %w", err)
			}
			engine, err := di.Resolve[*scheduler.Engine](c)
			if err != nil {
				return nil, fmt.Errorf("jobservice: resolve scheduler engine: %w", err)
			}
			zones, err := di.Resolve[*timezone.Service](c)
			if err != nil {
				return nil, fmt.Errorf("jobservice: resolve timezone service: %w", err)
			}

			logger := slog.Default()
			if l, err := di.Resolve[*slog.Logger](c); err == nil {
				logger = l
			}

			return New(store, engine, zones, logger), nil
		}); err != nil {
			return fmt.Errorf("register job service: %w", err)
		}
		return nil
	})
}
