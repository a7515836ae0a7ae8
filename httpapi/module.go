package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fluxcron/dispatcher/di"
	"github.com/fluxcron/dispatcher/jobservice"
	shttp "github.com/fluxcron/dispatcher/server/http"
)

// NewModule creates a di.Module that registers the API *Handler and
// eagerly installs its routes - wrapped with CORS and OpenTelemetry
// tracing - on the HTTP server before it starts.
//
// It requires *jobservice.Service and the server/http module.
func NewModule() di.Module {
	return di.NewModuleFunc("httpapi", func(c *di.Container) error {
		if err := di.For[*Handler](c).Provider(func(c *di.Container) (*Handler, error) {
			svc, err := di.Resolve[*jobservice.Service](c)
			if err != nil {
				return nil, fmt.Errorf("httpapi: resolve job service: %w", err)
			}

			logger := slog.Default()
			if l, err := di.Resolve[*slog.Logger](c); err == nil {
				logger = l
			}

			return NewHandler(svc, logger), nil
		}); err != nil {
			return fmt.Errorf("register api handler: %w", err)
		}

		if err := di.For[http.Handler](c).
			Eager().
			Provider(func(c *di.Container) (http.Handler, error) {
				handler, err := di.Resolve[*Handler](c)
				if err != nil {
					return nil, fmt.Errorf("httpapi: resolve handler: %w", err)
				}
				server, err := di.Resolve[*shttp.Server](c)
				if err != nil {
					return nil, fmt.Errorf("httpapi: resolve http server: %w", err)
				}

				routes := cors.New(cors.Options{
					AllowedOrigins: []string{"*"},
					AllowedMethods: []string{
						http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPatch,
					},
					AllowedHeaders: []string{"Content-Type"},
				}).Handler(handler.Routes())
				traced := otelhttp.NewHandler(routes, "api")

				server.SetHandler(traced)
				return traced, nil
			}); err != nil {
			return fmt.Errorf("register api routes: %w", err)
		}

		return nil
	})
}
