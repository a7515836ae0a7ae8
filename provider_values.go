package gaz

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/fluxcron/dispatcher/config"
	viperbackend "github.com/fluxcron/dispatcher/config/viper"
)

// ProviderValues gives providers read access to loaded configuration
// values under their namespace. It is registered in the container during
// App bootstrap, so providers can resolve it and unmarshal their own
// config section.
//
// Example:
//
//	pv, _ := gaz.Resolve[*gaz.ProviderValues](c)
//	var cfg RedisConfig
//	_ = pv.UnmarshalKey("redis", &cfg)
type ProviderValues struct {
	backend config.Backend
}

// UnmarshalKey unmarshals the configuration under key into target.
func (pv *ProviderValues) UnmarshalKey(key string, target any) error {
	return pv.backend.UnmarshalKey(key, target)
}

// Get returns the raw configuration value for key.
func (pv *ProviderValues) Get(key string) any {
	return pv.backend.Get(key)
}

// GetString returns the string value for key.
func (pv *ProviderValues) GetString(key string) string {
	return pv.backend.GetString(key)
}

// GetInt returns the int value for key.
func (pv *ProviderValues) GetInt(key string) int {
	return pv.backend.GetInt(key)
}

// GetBool returns the bool value for key.
func (pv *ProviderValues) GetBool(key string) bool {
	return pv.backend.GetBool(key)
}

// GetDuration returns the duration value for key.
func (pv *ProviderValues) GetDuration(key string) time.Duration {
	return pv.backend.GetDuration(key)
}

// GetFloat64 returns the float value for key.
func (pv *ProviderValues) GetFloat64(key string) float64 {
	return pv.backend.GetFloat64(key)
}

// IsSet reports whether key has a value from any source.
func (pv *ProviderValues) IsSet(key string) bool {
	return pv.backend.IsSet(key)
}

// providerConfigEntry records one ConfigProvider's declared flags,
// collected from the container's registered services.
type providerConfigEntry struct {
	namespace string
	flags     []ConfigFlag
}

// registerProviderValuesEarly registers *ProviderValues in the container
// so providers resolved during Build can read configuration. Idempotent.
func (a *App) registerProviderValuesEarly() error {
	if a.container.HasService(TypeName[*ProviderValues]()) {
		return nil
	}

	var backend config.Backend
	if a.configMgr != nil {
		backend = a.configMgr.Backend()
	} else {
		// No WithConfig target: still expose env/flag values.
		backend = viperbackend.New()
	}

	return For[*ProviderValues](a.container).Instance(&ProviderValues{backend: backend})
}

// collectProviderConfigs scans registered services for ConfigProvider
// implementations and records their declared flags. A config key declared
// by two providers is a collision. Idempotent - the collected set is
// rebuilt on each call.
func (a *App) collectProviderConfigs() error {
	a.providerConfigs = nil

	providerType := reflect.TypeOf((*ConfigProvider)(nil)).Elem()
	seenKeys := make(map[string]bool)

	var collectErr error
	a.container.ForEachService(func(name string, svc ServiceWrapper) {
		if collectErr != nil {
			return
		}
		t := svc.ServiceType()
		if t == nil || !t.Implements(providerType) {
			return
		}

		instance, err := svc.GetInstance(a.container, nil)
		if err != nil {
			collectErr = fmt.Errorf("collecting config flags from %s: %w", name, err)
			return
		}
		provider, ok := instance.(ConfigProvider)
		if !ok {
			return
		}

		ns := provider.ConfigNamespace()
		flags := provider.ConfigFlags()
		for _, flag := range flags {
			fullKey := flag.Key
			if ns != "" {
				fullKey = ns + "." + flag.Key
			}
			if seenKeys[fullKey] {
				collectErr = fmt.Errorf("%w: %s", ErrConfigKeyCollision, fullKey)
				return
			}
			seenKeys[fullKey] = true
		}

		a.providerConfigs = append(a.providerConfigs, &providerConfigEntry{
			namespace: ns,
			flags:     flags,
		})
	})

	return collectErr
}

// setupProviderConfigs registers ProviderValues, collects ConfigProvider
// declarations, applies their defaults and env bindings, and validates
// required keys. Called from Build; a nil ConfigManager skips the
// default/env application since there is no backend to carry it.
func (a *App) setupProviderConfigs() error {
	if err := a.registerProviderValuesEarly(); err != nil {
		return err
	}
	if err := a.collectProviderConfigs(); err != nil {
		return err
	}
	if a.configMgr == nil {
		return nil
	}

	var errs []error
	for _, entry := range a.providerConfigs {
		if err := a.configMgr.RegisterProviderFlags(entry.namespace, toConfigFlags(entry.flags)); err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, a.configMgr.ValidateProviderFlags(entry.namespace, toConfigFlags(entry.flags))...)
	}
	return errors.Join(errs...)
}

// toConfigFlags converts the gaz flag declarations to the config
// package's narrower form.
func toConfigFlags(flags []ConfigFlag) []config.ConfigFlag {
	out := make([]config.ConfigFlag, len(flags))
	for i, f := range flags {
		out[i] = config.ConfigFlag{Key: f.Key, Default: f.Default, Required: f.Required}
	}
	return out
}
