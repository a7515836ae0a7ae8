package di

import (
	"context"
	"time"
)

// HookFunc is a function that performs a lifecycle action.
type HookFunc func(context.Context) error

// HookConfig holds configuration for lifecycle hooks.
type HookConfig struct {
	// Timeout holds a hook timeout. No registration API or App code reads
	// HookConfig; OnStop hooks are bounded by the App's PerHookTimeout.
	Timeout time.Duration
}

// WithHookTimeout returns a HookOption that sets HookConfig.Timeout.
// The value is not applied to any hook; see HookConfig.
func WithHookTimeout(d time.Duration) HookOption {
	return func(cfg *HookConfig) {
		cfg.Timeout = d
	}
}

// HookOption configures a lifecycle hook.
type HookOption func(*HookConfig)

// Starter is an interface for services that need to perform action on startup.
// If a service implements this, OnStart is called when the app starts its
// services (App.Run), in dependency order.
type Starter interface {
	OnStart(context.Context) error
}

// Stopper is an interface for services that need to perform action on shutdown.
// If a service implements this, OnStop is called during the app's graceful shutdown.
type Stopper interface {
	OnStop(context.Context) error
}
