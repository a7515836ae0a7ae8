package timezone

import (
	"fmt"

	"github.com/fluxcron/dispatcher/di"
)

// ModuleOption configures the timezone module.
type ModuleOption func(*moduleConfig)

type moduleConfig struct {
	defaultZone string
}

func defaultModuleConfig() *moduleConfig {
	return &moduleConfig{defaultZone: "UTC"}
}

// WithDefaultZone sets the zone applied when a caller omits one.
func WithDefaultZone(zone string) ModuleOption {
	return func(c *moduleConfig) {
		c.defaultZone = zone
	}
}

// NewModule creates a di.Module that registers a *Service singleton.
func NewModule(opts ...ModuleOption) di.Module {
	cfg := defaultModuleConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return di.NewModuleFunc("timezone", func(c *di.Container) error {
		if err := di.For[*Service](c).Provider(func(*di.Container) (*Service, error) {
			return New(cfg.defaultZone), nil
		}); err != nil {
			return fmt.Errorf("register timezone service: %w", err)
		}
		return nil
	})
}
