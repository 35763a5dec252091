// Package observability wires OpenTelemetry tracing and metrics for the
// auth service: OTLP HTTP exporters, a shared resource, and the metric
// instruments the credential, session, and gate paths record against.
package observability

import (
	"errors"
	"fmt"
	"time"
)

// Config configures the OTLP exporters shared by tracer and meter.
type Config struct {
	// Enabled turns telemetry export on. When false, the global noop
	// providers stay in place and nothing is exported.
	Enabled bool `mapstructure:"enabled"`

	// ServiceName is the name stamped on every span and metric.
	ServiceName string `mapstructure:"service_name"`

	// ServiceVersion is the version of the service.
	ServiceVersion string `mapstructure:"service_version"`

	// Environment is the deployment environment (dev, staging, prod).
	Environment string `mapstructure:"environment"`

	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`

	// Insecure allows insecure connections (for development).
	Insecure bool `mapstructure:"insecure"`

	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`

	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "authd"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return errors.New("endpoint is required when telemetry is enabled")
	}
	if c.SampleRate < 0 || c.SampleRate > 1.0 {
		return fmt.Errorf("sample_rate must be in [0, 1], got %f", c.SampleRate)
	}
	return nil
}

// Describe returns a human-readable summary of the configuration.
func (c *Config) Describe() string {
	if !c.Enabled {
		return "telemetry disabled"
	}
	return fmt.Sprintf("otlp endpoint=%s sample_rate=%.2f interval=%s",
		c.Endpoint, c.SampleRate, c.Interval)
}
