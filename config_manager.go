package gaz

import (
	"github.com/spf13/pflag"

	"github.com/fluxcron/dispatcher/config"
	viperbackend "github.com/fluxcron/dispatcher/config/viper"
)

// ConfigManager handles configuration loading, binding, and validation for
// an App. It wraps a config.Manager over a viper backend, loading into the
// target struct registered via App.WithConfig.
type ConfigManager struct {
	target  any
	backend *viperbackend.Backend
	manager *config.Manager
}

// NewConfigManager creates a ConfigManager for the given target struct.
// The target may be nil when only flag/env access is needed.
func NewConfigManager(target any, opts ...ConfigOption) *ConfigManager {
	backend := viperbackend.New()
	return &ConfigManager{
		target:  target,
		backend: backend,
		manager: config.NewWithBackend(backend, opts...),
	}
}

// Load reads configuration from files, environment, and bound flags, and
// unmarshals into the target struct. Safe to call repeatedly - later calls
// pick up newly bound flag values.
func (m *ConfigManager) Load() error {
	if m.target == nil {
		return m.manager.Load()
	}
	return m.manager.LoadInto(m.target)
}

// BindFlags binds a parsed flag set so flag values override file and
// environment configuration.
func (m *ConfigManager) BindFlags(fs *pflag.FlagSet) error {
	return m.manager.BindFlags(fs)
}

// Backend returns the underlying config backend.
func (m *ConfigManager) Backend() config.Backend {
	return m.backend
}

// RegisterProviderFlags applies a ConfigProvider's declared flags: sets
// defaults and binds the provider's env vars (namespace.key → NAMESPACE_KEY).
func (m *ConfigManager) RegisterProviderFlags(namespace string, flags []config.ConfigFlag) error {
	return m.manager.RegisterProviderFlags(namespace, flags)
}

// ValidateProviderFlags reports all missing required provider config keys.
func (m *ConfigManager) ValidateProviderFlags(namespace string, flags []config.ConfigFlag) []error {
	return m.manager.ValidateProviderFlags(namespace, flags)
}
