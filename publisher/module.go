package publisher

import (
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/fluxcron/dispatcher/di"
)

// ModuleOption configures the publisher module.
type ModuleOption func(*Config)

// WithTopic sets the topic stream prefix. Default "user-data".
func WithTopic(topic string) ModuleOption {
	return func(c *Config) {
		c.Topic = topic
	}
}

// WithPartitions sets the partition count. Default 3.
func WithPartitions(n int) ModuleOption {
	return func(c *Config) {
		c.Partitions = n
	}
}

// NewModule creates a di.Module that registers a Valkey-backed Publisher
// singleton. It requires a valkey.Client to already be registered.
func NewModule(opts ...ModuleOption) di.Module {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return di.NewModuleFunc("publisher", func(c *di.Container) error {
		if err := di.For[Publisher](c).Provider(func(c *di.Container) (Publisher, error) {
			client, err := di.Resolve[valkey.Client](c)
			if err != nil {
				return nil, fmt.Errorf("publisher: resolve valkey client: %w", err)
			}

			logger := slog.Default()
			if l, err := di.Resolve[*slog.Logger](c); err == nil {
				logger = l
			}

			return NewValkeyPublisher(client, cfg, logger), nil
		}); err != nil {
			return fmt.Errorf("register publisher: %w", err)
		}
		return nil
	})
}
