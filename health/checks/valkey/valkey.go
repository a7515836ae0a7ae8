// Package valkey provides a health check for Valkey using valkey-go.
package valkey

import (
	"context"
	"errors"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// ErrNilClient is returned when the Valkey client is nil.
var ErrNilClient = errors.New("valkey: client is nil")

// Config configures the Valkey health check.
type Config struct {
	// Client is the Valkey client to check. Required.
	// Use valkey.NewClient() to create one.
	Client valkey.Client
}

// New creates a new Valkey health check.
// Uses PING command to verify connectivity and response.
//
// Returns nil if PING returns "PONG", error otherwise.
func New(cfg Config) func(context.Context) error {
	return func(ctx context.Context) error {
		if cfg.Client == nil {
			return ErrNilClient
		}
		pong, err := cfg.Client.Do(ctx, cfg.Client.B().Ping().Build()).ToString()
		if err != nil {
			return fmt.Errorf("valkey: ping failed: %w", err)
		}
		if pong != "PONG" {
			return fmt.Errorf("valkey: unexpected ping response: %q", pong)
		}
		return nil
	}
}
