package main

import "fmt"

// Config is the dispatcherd process configuration, loaded from
// dispatcher.yaml and DISPATCHER_* environment variables; no command-line
// flags are bound to it.
type Config struct {
	// HTTPPort is the public API port.
	HTTPPort int `mapstructure:"http_port"`

	// HealthPort is the management (liveness/readiness) port.
	HealthPort int `mapstructure:"health_port"`

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `mapstructure:"database_url" validate:"required"`

	// ValkeyAddrs are the message bus endpoints.
	ValkeyAddrs []string `mapstructure:"valkey_addrs" validate:"required,min=1"`

	// BusTopic is the stream name prefix records are published to.
	BusTopic string `mapstructure:"bus_topic"`

	// BusPartitions is the number of per-topic streams.
	BusPartitions int `mapstructure:"bus_partitions"`

	// DefaultZone applies when a job request omits its time zone.
	DefaultZone string `mapstructure:"default_zone"`

	// WorkerPoolSize bounds concurrent fire executions.
	WorkerPoolSize int `mapstructure:"worker_pool_size"`

	// FireQueueCapacity bounds the dispatch channel between the
	// scheduler and the worker pool.
	FireQueueCapacity int `mapstructure:"fire_queue_capacity"`

	// LogFormat is "json" or "text".
	LogFormat string `mapstructure:"log_format"`
}

// Default applies default values to zero-value fields.
func (c *Config) Default() {
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.HealthPort == 0 {
		c.HealthPort = 9090
	}
	if len(c.ValkeyAddrs) == 0 {
		c.ValkeyAddrs = []string{"127.0.0.1:6379"}
	}
	if c.BusTopic == "" {
		c.BusTopic = "user-data"
	}
	if c.BusPartitions == 0 {
		c.BusPartitions = 3
	}
	if c.DefaultZone == "" {
		c.DefaultZone = "UTC"
	}
	if c.WorkerPoolSize == 0 {
		c.WorkerPoolSize = 10
	}
	if c.FireQueueCapacity == 0 {
		c.FireQueueCapacity = 25
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Validate checks cross-field constraints not covered by tags.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("http_port %d out of range", c.HTTPPort)
	}
	if c.BusPartitions <= 0 {
		return fmt.Errorf("bus_partitions must be positive, got %d", c.BusPartitions)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log_format %q must be json or text", c.LogFormat)
	}
	return nil
}
