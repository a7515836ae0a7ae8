package otel

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	// DefaultSampleRatio is the default sampling ratio for root spans (10%).
	DefaultSampleRatio = 0.1
)

// Config holds OpenTelemetry configuration.
type Config struct {
	// Endpoint is the OTLP endpoint (e.g., "localhost:4317").
	// If empty, tracing is disabled.
	Endpoint string

	// ServiceName is the service name for traces.
	// Default: "gaz".
	ServiceName string

	// SampleRatio is the sampling ratio for root spans (0.0-1.0).
	// Only applies to spans without incoming trace context.
	// Default: 0.1 (10%).
	SampleRatio float64

	// Insecure uses insecure connection to the collector.
	// Default: true for development.
	Insecure bool
}

// DefaultConfig returns the default OTEL configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "",                 // Disabled by default.
		ServiceName: "gaz",              // Default service name.
		SampleRatio: DefaultSampleRatio, // Sample 10% of root spans.
		Insecure:    true,               // Insecure for dev.
	}
}

// Namespace returns the configuration namespace for config binding.
func (c *Config) Namespace() string {
	return "otel"
}

// Flags registers CLI flags for the OTEL configuration.
func (c *Config) Flags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Endpoint, "otel-endpoint", c.Endpoint,
		"OTLP collector endpoint (empty disables tracing)")
	fs.StringVar(&c.ServiceName, "otel-service-name", c.ServiceName,
		"Service name reported on traces")
	fs.Float64Var(&c.SampleRatio, "otel-sample-ratio", c.SampleRatio,
		"Sampling ratio for root spans (0.0-1.0)")
	fs.BoolVar(&c.Insecure, "otel-insecure", c.Insecure,
		"Use an insecure connection to the collector")
}

// SetDefaults applies default values to zero-value fields.
func (c *Config) SetDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "gaz"
	}
	if c.SampleRatio == 0 {
		c.SampleRatio = DefaultSampleRatio
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("otel: sample ratio %f must be between 0 and 1", c.SampleRatio)
	}
	return nil
}
