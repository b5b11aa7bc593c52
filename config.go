package genstack

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML or JSON; DefaultConfig is the usual starting
// point.
type Config struct {
	Executor ExecutorConfig `json:"executor" yaml:"executor"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
}

// ExecutorConfig locates the external execution service.
type ExecutorConfig struct {
	BaseURL   string `json:"baseURL" yaml:"baseURL"`
	TimeoutMs int    `json:"timeoutMs" yaml:"timeoutMs"`
}

// Timeout returns the per-call deadline applied to boundary calls. On
// expiry the call is treated as a network failure.
func (c *ExecutorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// TracingConfig controls the optional OpenTelemetry setup.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with the service defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Executor: ExecutorConfig{
			BaseURL:   "http://localhost:8000",
			TimeoutMs: 60000,
		},
		Tracing: TracingConfig{
			ServiceName:    "genstack",
			ServiceVersion: "1.0.0",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Executor.BaseURL == "" {
		return fmt.Errorf("executor.baseURL is required")
	}
	if c.Executor.TimeoutMs <= 0 {
		return fmt.Errorf("executor.timeoutMs must be > 0")
	}
	return nil
}

// LoadConfig reads a YAML configuration from the supplied location (any
// scheme supported by viant/afs) on top of the defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", URL, err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
