package jobstore

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fluxcron/dispatcher/di"
)

// NewModule creates a di.Module that registers a pgx-backed Store singleton.
//
// It requires a *pgxpool.Pool to already be registered (typically as an
// instance provided by the composition root once the pool has connected).
// The logger is optional - if not registered, slog.Default() is used.
func NewModule() di.Module {
	return di.NewModuleFunc("jobstore", func(c *di.Container) error {
		if err := di.For[Store](c).Provider(func(c *di.Container) (Store, error) {
			pool, err := di.Resolve[*pgxpool.Pool](c)
			if err != nil {
				return nil, fmt.Errorf("jobstore: resolve pgxpool.Pool: %w", err)
			}

			logger := slog.Default()
			if l, err := di.Resolve[*slog.Logger](c); err == nil {
				logger = l
			}

			return NewPGStore(pool, logger), nil
		}); err != nil {
			return fmt.Errorf("register jobstore: %w", err)
		}
		return nil
	})
}
