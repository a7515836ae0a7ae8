package records

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fluxcron/dispatcher/di"
)

// NewModule creates a di.Module that registers a pgx-backed Source
// singleton. It requires a *pgxpool.Pool to already be registered.
func NewModule() di.Module {
	return di.NewModuleFunc("records", func(c *di.Container) error {
		if err := di.For[Source](c).Provider(func(c *di.Container) (Source, error) {
			pool, err := di.Resolve[*pgxpool.Pool](c)
			if err != nil {
				return nil, fmt.Errorf("records: resolve pgxpool.Pool: %w", err)
			}
			return NewPGSource(pool), nil
		}); err != nil {
			return fmt.Errorf("register record source: %w", err)
		}
		return nil
	})
}
