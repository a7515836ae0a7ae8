// Package server provides the HTTP transport layer for dispatcher applications,
// wrapping server/http with lifecycle management.
//
// # Usage
//
// Use NewModule to register the HTTP server as a DI-managed, eager-started
// component:
//
//	app := gaz.New()
//	app.UseDI(server.NewModule(
//	    server.WithHTTPPort(8080),
//	    server.WithHTTPHandler(router),
//	))
//	app.Run(ctx)
//
// # Subpackages
//
//   - server/http: HTTP server with configurable timeouts and lifecycle management
//   - server/otel: OpenTelemetry tracing setup for the HTTP server
//
// # Lifecycle Integration
//
// The HTTP server implements di.Starter and di.Stopper, integrating with the
// application lifecycle. It is registered as Eager, meaning it starts
// automatically when the application starts and stops gracefully on shutdown.
package server
