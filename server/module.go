package server

import (
	"fmt"
	"net/http"

	"github.com/fluxcron/dispatcher/di"
	shttp "github.com/fluxcron/dispatcher/server/http"
)

// ModuleOption configures the server module.
type ModuleOption func(*moduleConfig)

type moduleConfig struct {
	httpPort    int
	httpHandler http.Handler
}

func defaultModuleConfig() *moduleConfig {
	return &moduleConfig{
		httpPort:    shttp.DefaultPort,
		httpHandler: nil,
	}
}

// WithHTTPPort sets the HTTP server port. Default is 8080.
func WithHTTPPort(port int) ModuleOption {
	return func(c *moduleConfig) {
		c.httpPort = port
	}
}

// WithHTTPHandler sets the HTTP handler serving the public API.
func WithHTTPHandler(h http.Handler) ModuleOption {
	return func(c *moduleConfig) {
		c.httpHandler = h
	}
}

// NewModule creates a server module with the given options.
// Returns a di.Module that registers the HTTP server component.
//
// Example:
//
//	app := gaz.New()
//	app.UseDI(server.NewModule(server.WithHTTPPort(8080), server.WithHTTPHandler(router)))
func NewModule(opts ...ModuleOption) di.Module {
	cfg := defaultModuleConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return di.NewModuleFunc("server", func(c *di.Container) error {
		httpOpts := []shttp.ModuleOption{
			shttp.WithPort(cfg.httpPort),
		}
		if cfg.httpHandler != nil {
			httpOpts = append(httpOpts, shttp.WithHandler(cfg.httpHandler))
		}
		httpModule := shttp.NewModule(httpOpts...)
		if err := httpModule.Register(c); err != nil {
			return fmt.Errorf("register http module: %w", err)
		}

		return nil
	})
}
