package gaz

import "github.com/fluxcron/dispatcher/config"

// =============================================================================
// Config Options - for ConfigManager
// =============================================================================

// ConfigOption configures the ConfigManager's underlying config.Manager.
// It is the config package's Option type, so config.WithName, config.
// WithEnvPrefix, etc. can be passed directly to App.WithConfig.
type ConfigOption = config.Option

// WithName sets the config file name (without extension).
// Default is "config".
func WithName(name string) ConfigOption {
	return config.WithName(name)
}

// WithType sets the config file type (yaml, json, toml, etc.).
// Default is "yaml".
func WithType(t string) ConfigOption {
	return config.WithType(t)
}

// WithEnvPrefix sets the environment variable prefix.
// If set, environment variables will be bound automatically.
func WithEnvPrefix(prefix string) ConfigOption {
	return config.WithEnvPrefix(prefix)
}

// WithSearchPaths sets the paths to search for the config file.
// Default is ["."].
func WithSearchPaths(paths ...string) ConfigOption {
	return config.WithSearchPaths(paths...)
}

// WithProfileEnv sets the environment variable name that determines the active profile.
// If set and the env var is present, a profile-specific config will be loaded and merged.
func WithProfileEnv(envVar string) ConfigOption {
	return config.WithProfileEnv(envVar)
}

// WithDefaults sets default values for configuration keys.
func WithDefaults(defaults map[string]any) ConfigOption {
	return config.WithDefaults(defaults)
}
