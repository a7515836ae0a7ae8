// Package gaz provides a simple, type-safe dependency injection container
// with lifecycle management for Go applications.
package gaz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"reflect"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fluxcron/dispatcher/di"
	"github.com/fluxcron/dispatcher/eventbus"
	"github.com/fluxcron/dispatcher/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// providerWithErrorReturnCount is the expected number of return values for a provider
// that returns (T, error).
const providerWithErrorReturnCount = 2

// AppOptions configuration for App.
type AppOptions struct {
	ShutdownTimeout time.Duration

	// PerHookTimeout bounds each individual OnStop hook during shutdown.
	// Zero means no per-hook bound.
	PerHookTimeout time.Duration

	LoggerConfig *logger.Config
}

// AppOption configures AppOptions.
//
// Deprecated: Use Option instead.
type AppOption func(*AppOptions)

// Option configures App settings.
type Option func(*App)

// WithShutdownTimeout sets the timeout for graceful shutdown.
// Default is 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		a.opts.ShutdownTimeout = d
	}
}

// WithLoggerConfig sets the logger configuration.
func WithLoggerConfig(cfg *logger.Config) Option {
	return func(a *App) {
		a.opts.LoggerConfig = cfg
	}
}

// WithPerHookTimeout bounds each individual shutdown hook. A hook that
// exceeds the bound is abandoned with a blame log and shutdown continues
// to the next hook.
func WithPerHookTimeout(d time.Duration) Option {
	return func(a *App) {
		a.opts.PerHookTimeout = d
	}
}

// WithStrictConfig sets the App's strict-config flag. Configuration
// loading does not consult the flag: unknown keys are accepted either way.
func WithStrictConfig() Option {
	return func(a *App) {
		a.strictConfig = true
	}
}

// WithCobra attaches the App lifecycle to a Cobra command, as an Option
// form of (*App).WithCobra for use with New().
func WithCobra(cmd *cobra.Command) Option {
	return func(a *App) {
		a.WithCobra(cmd)
	}
}

// withShutdownTimeoutLegacy is the legacy version for NewApp().
func withShutdownTimeoutLegacy(d time.Duration) AppOption {
	return func(o *AppOptions) {
		o.ShutdownTimeout = d
	}
}

// App is the application runtime wrapper.
// It orchestrates dependency injection, lifecycle management, and signal handling.
type App struct {
	container   *Container
	opts        AppOptions
	built       bool            // tracks if Build() was called
	buildErrors []error         // collects registration errors for Build()
	modules     map[string]bool // tracks registered module names for duplicate detection

	// Logger instance
	Logger *slog.Logger

	// Configuration
	configMgr *ConfigManager

	// Cobra integration
	cobraCmd        *cobra.Command
	moduleFlagFns   []func(*pflag.FlagSet)
	flagFnsApplied  int
	providerConfigs []*providerConfigEntry

	// strictConfig records WithStrictConfig / --config-strict; it is not
	// read when configuration is loaded or unmarshaled.
	strictConfig bool

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// New creates a new App with the given options.
// Use the fluent provider methods (ProvideSingleton, ProvideTransient, etc.)
// to register services, then call Build() and Run().
//
// Example:
//
//	app := gaz.New(gaz.WithShutdownTimeout(10 * time.Second))
//	app.ProvideSingleton(NewDatabase).
//	    ProvideTransient(NewRequest)
//	if err := app.Build(); err != nil {
//	    log.Fatal(err)
//	}
//	app.Run(ctx)
func New(opts ...Option) *App {
	app := &App{
		container: NewContainer(),
		opts: AppOptions{
			ShutdownTimeout: defaultShutdownTimeout,
		},
		modules: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(app)
	}

	// Logger configuration defaults now; the logger itself is created at
	// Build() from these options, before configuration is loaded.
	if app.opts.LoggerConfig == nil {
		app.opts.LoggerConfig = &logger.Config{
			Level:  slog.LevelInfo,
			Format: "json",
		}
	}

	return app
}

// NewApp creates a new App with the given container and options.
//
// Deprecated: Use New() with fluent provider methods instead.
func NewApp(c *Container, opts ...AppOption) *App {
	options := AppOptions{
		ShutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	// For legacy NewApp, use default logger since we can't easily configure it via AppOption
	// without breaking changes or adding new AppOption types.
	defaultLogger := logger.NewLogger(&logger.Config{
		Level:  slog.LevelInfo,
		Format: "json",
	})

	app := &App{
		container: c,
		opts:      options,
		modules:   make(map[string]bool),
		Logger:    defaultLogger,
	}

	// Register Logger in container
	// Ignore error if already registered (user might have put one in container)
	_ = app.registerInstance(defaultLogger)

	return app
}

// Container returns the underlying container.
// This is useful for advanced use cases or testing.
func (a *App) Container() *Container {
	return a.container
}

// WithConfig configures the application to load configuration into the target struct.
// The target must be a pointer to a struct.
//
// The configuration is loaded from:
// 1. Defaults (via Defaulter interface)
// 2. Config files (yaml, json, toml) in specified paths
// 3. Environment variables (if WithEnvPrefix is set)
// 4. Flags (if WithCobra is used)
//
// The config object is automatically registered as a singleton instance in the container.
func (a *App) WithConfig(target any, opts ...ConfigOption) *App {
	if a.built {
		panic("gaz: cannot configure config after Build()")
	}

	a.configMgr = NewConfigManager(target, opts...)

	// Register the config object in the container
	// We register the pointer itself, as that's what will be populated
	if err := a.registerInstance(target); err != nil {
		a.buildErrors = append(a.buildErrors, err)
	}

	return a
}

// ProvideSingleton registers a provider as a singleton (one instance per container).
// The provider function must have signature: func(*Container) (T, error) or func(*Container) T
// Returns the App for method chaining.
//
// Example:
//
//	app.ProvideSingleton(func(c *gaz.Container) (*Database, error) {
//	    return NewDatabase(), nil
//	})
func (a *App) ProvideSingleton(provider any) *App {
	if a.built {
		panic("gaz: cannot add providers after Build()")
	}
	if err := a.registerProvider(provider, false, true); err != nil {
		a.buildErrors = append(a.buildErrors, err)
	}
	return a
}

// ProvideTransient registers a provider as transient (new instance per resolution).
// The provider function must have signature: func(*Container) (T, error) or func(*Container) T
// Returns the App for method chaining.
func (a *App) ProvideTransient(provider any) *App {
	if a.built {
		panic("gaz: cannot add providers after Build()")
	}
	if err := a.registerProvider(provider, true, true); err != nil {
		a.buildErrors = append(a.buildErrors, err)
	}
	return a
}

// ProvideEager registers a provider as an eager singleton (instantiated at Build time).
// The provider function must have signature: func(*Container) (T, error) or func(*Container) T
// Returns the App for method chaining.
func (a *App) ProvideEager(provider any) *App {
	if a.built {
		panic("gaz: cannot add providers after Build()")
	}
	if err := a.registerProvider(provider, false, false); err != nil {
		a.buildErrors = append(a.buildErrors, err)
	}
	return a
}

// ProvideInstance registers a pre-built value as a singleton.
// Returns the App for method chaining.
func (a *App) ProvideInstance(instance any) *App {
	if a.built {
		panic("gaz: cannot add providers after Build()")
	}
	if err := a.registerInstance(instance); err != nil {
		a.buildErrors = append(a.buildErrors, err)
	}
	return a
}

// registerProvider uses reflection to extract the return type and register the provider.
func (a *App) registerProvider(provider any, transient, lazy bool) error {
	providerType := reflect.TypeOf(provider)
	if providerType == nil || providerType.Kind() != reflect.Func {
		return fmt.Errorf("%w: provider must be a function", ErrInvalidProvider)
	}

	// Validate input: must accept *Container
	if providerType.NumIn() != 1 {
		return fmt.Errorf(
			"%w: provider must accept exactly one argument (*Container)",
			ErrInvalidProvider,
		)
	}
	containerType := reflect.TypeOf((*Container)(nil))
	if providerType.In(0) != containerType {
		return fmt.Errorf("%w: provider argument must be *Container", ErrInvalidProvider)
	}

	// Validate output: must return (T) or (T, error)
	numOut := providerType.NumOut()
	hasErrorReturn := numOut == providerWithErrorReturnCount
	if numOut < 1 || numOut > 2 {
		return fmt.Errorf("%w: provider must return (T) or (T, error)", ErrInvalidProvider)
	}
	if hasErrorReturn {
		errorType := reflect.TypeOf((*error)(nil)).Elem()
		if !providerType.Out(1).Implements(errorType) {
			return fmt.Errorf("%w: second return value must be error", ErrInvalidProvider)
		}
	}

	returnType := providerType.Out(0)
	typeNameStr := typeName(returnType)

	// Create a wrapped provider that handles both (T) and (T, error) signatures
	providerValue := reflect.ValueOf(provider)
	wrappedProvider := func(c *Container) (any, error) {
		results := providerValue.Call([]reflect.Value{reflect.ValueOf(c)})
		instance := results[0].Interface()
		if hasErrorReturn && !results[1].IsNil() {
			err, _ := results[1].Interface().(error)
			return nil, err
		}
		return instance, nil
	}

	// Check for duplicate registration
	if a.container.HasService(typeNameStr) {
		return fmt.Errorf("%w: %s", ErrDuplicate, typeNameStr)
	}

	// Create appropriate service wrapper
	var svc di.ServiceWrapper
	switch {
	case transient:
		svc = newTransientAny(typeNameStr, typeNameStr, returnType, wrappedProvider)
	case !lazy:
		svc = newEagerSingletonAny(typeNameStr, typeNameStr, returnType, wrappedProvider)
	default:
		svc = newLazySingletonAny(typeNameStr, typeNameStr, returnType, wrappedProvider)
	}

	a.container.Register(typeNameStr, svc)
	return nil
}

// registerInstance registers a pre-built instance using reflection.
func (a *App) registerInstance(instance any) error {
	instanceType := reflect.TypeOf(instance)
	if instanceType == nil {
		return fmt.Errorf("%w: instance cannot be nil", ErrInvalidProvider)
	}

	typeNameStr := typeName(instanceType)

	// Check for duplicate registration
	if a.container.HasService(typeNameStr) {
		return fmt.Errorf("%w: %s", ErrDuplicate, typeNameStr)
	}

	svc := newInstanceServiceAny(typeNameStr, typeNameStr, instance)
	a.container.Register(typeNameStr, svc)
	return nil
}

// loadConfig loads the configuration from all sources.
func (a *App) loadConfig() error {
	if err := a.applyConfigFlags(); err != nil {
		return err
	}
	if a.configMgr == nil {
		return nil
	}
	return a.configMgr.Load()
}

// Build validates all registrations and instantiates eager services.
// It aggregates all errors and returns them using errors.Join.
// Build is idempotent - calling it multiple times after success returns nil.
func (a *App) Build() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.built {
		return nil // Already built, idempotent
	}

	// Initialize and register the logger
	if a.Logger == nil {
		a.Logger = logger.NewLogger(a.opts.LoggerConfig)
		if err := a.registerInstance(a.Logger); err != nil && !errors.Is(err, ErrDuplicate) {
			return err
		}
	}

	// Register the in-process event bus unless the user supplied one
	if err := eventbus.Module(a.container); err != nil {
		return err
	}

	// Load configuration first
	if err := a.loadConfig(); err != nil {
		return err
	}

	// Wire ConfigProvider declarations: defaults, env bindings, and
	// required-key validation, plus the injectable ProviderValues.
	if err := a.setupProviderConfigs(); err != nil {
		return err
	}

	// Collect any registration errors
	var errs []error
	errs = append(errs, a.buildErrors...)

	// Delegate to container.Build() for eager instantiation
	if err := a.container.Build(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.built = true
	return nil
}

// lifecycleServices snapshots the container's service wrappers and
// dependency graph for startup/shutdown ordering.
func (a *App) lifecycleServices() (map[string][]string, map[string]di.ServiceWrapper) {
	graph := a.container.GetGraph()
	services := make(map[string]di.ServiceWrapper)
	a.container.ForEachService(func(name string, svc di.ServiceWrapper) {
		services[name] = svc
	})
	return graph, services
}

// Run executes the application lifecycle.
// It builds the container, starts services in order, and waits for a signal or stop call.
func (a *App) Run(ctx context.Context) error {
	if err := a.Build(); err != nil {
		return err
	}

	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return errors.New("app is already running")
	}
	a.stopCh = make(chan struct{})
	a.running = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	// Compute startup order
	graph, services := a.lifecycleServices()
	startupOrder, err := ComputeStartupOrder(graph, services)
	if err != nil {
		return err
	}

	a.log().Info("starting application", "services_count", len(services))

	// Start services layer by layer
	for _, layer := range startupOrder {
		var wg sync.WaitGroup
		errCh := make(chan error, len(layer))

		for _, name := range layer {
			svc := services[name]
			wg.Add(1)
			go func() {
				defer wg.Done()
				start := time.Now()
				if startErr := svc.Start(ctx); startErr != nil {
					a.log().Error("failed to start service", "name", name, "error", startErr)
					errCh <- fmt.Errorf("starting service %s: %w", name, startErr)
				} else {
					a.log().Info("service started", "name", name, "duration", time.Since(start))
				}
			}()
		}
		wg.Wait()
		close(errCh)

		if startupErr := <-errCh; startupErr != nil {
			// Rollback: stop everything we started.
			// Stop() is safe to call on services that never started.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.opts.ShutdownTimeout)
			defer cancel()
			_ = a.Stop(shutdownCtx)
			return startupErr
		}
	}

	// Signal handling
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Block until stopped
	select {
	case <-ctx.Done():
		// Context cancelled, initiate shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.opts.ShutdownTimeout)
		defer cancel()
		return a.Stop(shutdownCtx)
	case sig := <-sigCh:
		if sig == syscall.SIGTERM {
			// SIGTERM is the ops path: graceful shutdown, no
			// double-signal escape hatch (that is SIGTERM + SIGKILL).
			a.log().Info("Shutting down gracefully", "signal", "SIGTERM")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.opts.ShutdownTimeout)
			defer cancel()
			return a.Stop(shutdownCtx)
		}

		// SIGINT: graceful shutdown, with a second interrupt forcing exit.
		a.log().Info("Shutting down gracefully; press Ctrl+C again to force exit", "signal", "SIGINT")
		stopDone := make(chan error, 1)
		go func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.opts.ShutdownTimeout)
			defer cancel()
			stopDone <- a.Stop(shutdownCtx)
		}()
		select {
		case err := <-stopDone:
			return err
		case <-sigCh:
			a.log().Error("second interrupt received, forcing exit")
			forceExit(1)
			// exitFunc normally never returns; a stubbed one (tests)
			// falls through to wait for the shutdown to finish.
			return <-stopDone
		}
	case <-a.stopCh:
		// Stopped externally (Stop() called)
		return nil
	}
}

// Stop initiates graceful shutdown of the application.
// It executes OnStop hooks for all services in reverse dependency order.
// Safe to call even if Run() was not used (e.g., Cobra integration).
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	wasRunning := a.running
	a.mu.Unlock()

	// Watchdog: a shutdown that outlives the global timeout is forced out.
	if a.opts.ShutdownTimeout > 0 {
		watchdog := time.AfterFunc(a.opts.ShutdownTimeout, func() {
			a.log().Error("global timeout exceeded during shutdown, forcing exit",
				"timeout", a.opts.ShutdownTimeout)
			forceExit(1)
		})
		defer watchdog.Stop()
	}

	// Compute shutdown order (reverse of startup)
	graph, services := a.lifecycleServices()
	startupOrder, err := ComputeStartupOrder(graph, services)
	if err != nil {
		// Should not happen if Build passed, unless graph changed (impossible after Build)
		return err
	}
	shutdownOrder := ComputeShutdownOrder(startupOrder)

	var lastErr error

	// Stop services layer by layer
	for _, layer := range shutdownOrder {
		var wg sync.WaitGroup
		errCh := make(chan error, len(layer))

		for _, name := range layer {
			svc := services[name]
			wg.Add(1)
			go func() {
				defer wg.Done()

				hookCtx := ctx
				cancel := func() {}
				if a.opts.PerHookTimeout > 0 {
					hookCtx, cancel = context.WithTimeout(ctx, a.opts.PerHookTimeout)
				}
				defer cancel()

				start := time.Now()
				stopErr := svc.Stop(hookCtx)
				switch {
				case stopErr != nil && hookCtx.Err() != nil && ctx.Err() == nil:
					a.log().Error("shutdown hook exceeded timeout",
						"name", name, "timeout", a.opts.PerHookTimeout, "elapsed", time.Since(start))
					errCh <- fmt.Errorf("stopping service %s: %w", name, stopErr)
				case stopErr != nil:
					a.log().Error("failed to stop service", "name", name, "error", stopErr)
					errCh <- fmt.Errorf("stopping service %s: %w", name, stopErr)
				default:
					a.log().Info("service stopped", "name", name, "duration", time.Since(start))
				}
			}()
		}
		wg.Wait()
		close(errCh)

		// Collect errors but continue shutdown
		for shutdownErr := range errCh {
			if lastErr == nil {
				lastErr = shutdownErr
			} else {
				lastErr = errors.Join(lastErr, shutdownErr)
			}
		}
	}

	// Signal Run to exit (only if Run() was used)
	if wasRunning {
		a.mu.Lock()
		select {
		case <-a.stopCh:
			// Already closed
		default:
			close(a.stopCh)
		}
		a.mu.Unlock()
	}

	return lastErr
}

// log returns the app logger, falling back to slog.Default before Build.
func (a *App) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// EventBus returns the app's in-process event bus. It is nil before
// Build(); afterwards it resolves the container-registered bus.
func (a *App) EventBus() *eventbus.EventBus {
	a.mu.Lock()
	built := a.built
	a.mu.Unlock()
	if !built {
		return nil
	}
	bus, err := Resolve[*eventbus.EventBus](a.container)
	if err != nil {
		return nil
	}
	return bus
}

// MergeConfigMap sets the given keys on the configuration backend. Values
// set this way take precedence over every other source, including env
// vars and flags. A ConfigManager is created on demand when WithConfig
// was not used.
func (a *App) MergeConfigMap(values map[string]any) error {
	if a.configMgr == nil {
		a.configMgr = NewConfigManager(nil)
	}
	for key, value := range values {
		a.configMgr.Backend().Set(key, value)
	}
	return nil
}

// applyConfigFlags reads the config-shaping flags (--config and
// --config-strict) from the attached Cobra command, if any. A --config
// path that does not exist is an error. Absent flags leave the current
// settings untouched; --env-prefix is not read here.
func (a *App) applyConfigFlags() error {
	if a.cobraCmd == nil {
		return nil
	}
	fs := a.cobraCmd.Flags()

	if f := fs.Lookup("config-strict"); f != nil {
		if v, err := fs.GetBool("config-strict"); err == nil {
			a.strictConfig = v
		}
	}
	if f := fs.Lookup("config"); f != nil {
		if path, err := fs.GetString("config"); err == nil && path != "" {
			if _, statErr := os.Stat(path); statErr != nil {
				return fmt.Errorf("config file not found: %s", path)
			}
			if a.configMgr != nil {
				if cfs, ok := a.configMgr.Backend().(interface{ SetConfigFile(string) }); ok {
					cfs.SetConfigFile(path)
				}
			}
		}
	}
	return nil
}

// applyModuleFlags applies flag registrars that have not yet been
// applied. Applying is tracked so repeated bootstraps cannot redefine a
// flag.
func (a *App) applyModuleFlags(fs *pflag.FlagSet) {
	for _, flagFn := range a.moduleFlagFns[a.flagFnsApplied:] {
		flagFn(fs)
	}
	a.flagFnsApplied = len(a.moduleFlagFns)
}
