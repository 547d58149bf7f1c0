package launch

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/launch/policy"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the launch service configuration.
// The zero-value is usable, unset fields fall back to DefaultConfig values.
type Config struct {
	Queue     QueueConfig       `json:"queue" yaml:"queue"`
	Runtime   RuntimeConfig     `json:"runtime" yaml:"runtime"`
	Process   ProcessConfig     `json:"process" yaml:"process"`
	Tracing   TracingConfig     `json:"tracing" yaml:"tracing"`
	Policy    *policy.Config    `json:"policy,omitempty" yaml:"policy,omitempty"`
	Arguments map[string]string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// QueueConfig controls the event queue
type QueueConfig struct {
	// BufferSize is the queue channel capacity, events beyond it wait in an unbounded overflow list
	BufferSize int `json:"bufferSize" yaml:"bufferSize"`
}

// RuntimeConfig controls the run loop
type RuntimeConfig struct {
	// PollIntervalMs is how long the loop waits for an event before checking for idleness
	PollIntervalMs int `json:"pollIntervalMs" yaml:"pollIntervalMs"`
	// ShutdownTimeoutMs bounds draining the queue after a failure
	ShutdownTimeoutMs int `json:"shutdownTimeoutMs" yaml:"shutdownTimeoutMs"`
}

// ProcessConfig controls the default process runner
type ProcessConfig struct {
	// TimeoutMs is the default process timeout, 0 lets processes run until they exit or the launch shuts down
	TimeoutMs int `json:"timeoutMs" yaml:"timeoutMs"`
}

// TracingConfig enables OpenTelemetry tracing
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Service    string `json:"service" yaml:"service"`
	Version    string `json:"version" yaml:"version"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with default values
func DefaultConfig() *Config {
	return &Config{
		Queue:   QueueConfig{BufferSize: 1024},
		Runtime: RuntimeConfig{PollIntervalMs: 50, ShutdownTimeoutMs: 5000},
		Tracing: TracingConfig{Service: "launch", Version: "0.1.0"},
	}
}

// Validate returns error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Queue.BufferSize <= 0 {
		return fmt.Errorf("queue.bufferSize must be > 0")
	}
	if c.Runtime.PollIntervalMs <= 0 {
		return fmt.Errorf("runtime.pollIntervalMs must be > 0")
	}
	if c.Runtime.ShutdownTimeoutMs < 0 {
		return fmt.Errorf("runtime.shutdownTimeoutMs must be >= 0")
	}
	if c.Process.TimeoutMs < 0 {
		return fmt.Errorf("process.timeoutMs must be >= 0")
	}
	if c.Policy != nil {
		switch c.Policy.Mode {
		case "", policy.ModeAuto, policy.ModeDeny, policy.ModeAsk:
		default:
			return fmt.Errorf("unsupported policy.mode: %v", c.Policy.Mode)
		}
	}
	if c.Tracing.Enabled && c.Tracing.Service == "" {
		return fmt.Errorf("tracing.service is required when tracing is enabled")
	}
	return nil
}

// LoadConfig loads YAML (or JSON) configuration from URL on top of DefaultConfig
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, ret.Validate()
}
