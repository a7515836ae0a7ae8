package gaz

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/fluxcron/dispatcher/di"
)

// Use applies a module to the app's container.
// Modules bundle providers, configs, and other modules for reuse.
//
// Child modules bundled via ModuleBuilder.Use() are applied BEFORE the
// parent module's providers. This is for composition convenience, not
// dependency ordering (which is handled by the DI container).
//
// Returns error on duplicate module name (collected during Build()).
// Panics if called after Build().
//
// Example:
//
//	module := gaz.NewModule("database").
//	    Provide(func(c *gaz.Container) error {
//	        return gaz.For[*DB](c).Provider(NewDB)
//	    }).
//	    Build()
//
//	app := gaz.New().
//	    Use(module).
//	    Use(cacheModule)
func (a *App) Use(m Module) *App {
	if a.built {
		panic("gaz: cannot add modules after Build()")
	}

	name := m.Name()

	// Check for duplicate module name
	if a.modules[name] {
		a.buildErrors = append(a.buildErrors,
			fmt.Errorf("%w: %s", ErrDuplicateModule, name))
		return a
	}
	a.modules[name] = true

	// Apply the module (which applies child modules first, then providers)
	if err := m.Apply(a); err != nil {
		a.buildErrors = append(a.buildErrors,
			fmt.Errorf("module %s: %w", name, err))
	}

	return a
}

// UseDI applies a di.Module to the app's container.
// di.Module is the container-level module form returned by subsystem
// packages (jobstore, records, httpapi, ...). Unlike Use, the
// module registers directly against the container and never sees the App.
//
// Example:
//
//	app := gaz.New().
//	    UseDI(di.NewModuleFunc("health", health.Module)).
//	    UseDI(jobstore.NewModule())
func (a *App) UseDI(m di.Module) *App {
	if a.built {
		panic("gaz: cannot add modules after Build()")
	}

	name := m.Name()

	// Check for duplicate module name
	if a.modules[name] {
		a.buildErrors = append(a.buildErrors,
			fmt.Errorf("%w: %s", ErrDuplicateModule, name))
		return a
	}
	a.modules[name] = true

	if err := m.Register(a.container); err != nil {
		a.buildErrors = append(a.buildErrors,
			fmt.Errorf("module %s: %w", name, err))
	}

	return a
}

// AddFlagsFn registers additional CLI flag registrars, applied to the
// root command's persistent flags when the app is attached to Cobra.
func (a *App) AddFlagsFn(fns ...func(*pflag.FlagSet)) *App {
	a.moduleFlagFns = append(a.moduleFlagFns, fns...)
	return a
}
