package main

import (
	"fmt"
	"time"

	"github.com/kbukum/syncstream/config"
	"github.com/kbukum/syncstream/memstore"
	"github.com/kbukum/syncstream/resilience"
	"github.com/kbukum/syncstream/subscriber"
	"github.com/kbukum/syncstream/validation"
	"github.com/kbukum/syncstream/version"
	"github.com/kbukum/syncstream/walkthrough"
)

// DemoConfig is the configuration of syncstream-demo.
type DemoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// SecretsFile holds the values substituted into store.uri placeholders.
	SecretsFile string                 `yaml:"secrets_file" mapstructure:"secrets_file"`
	// LogLevels overrides logger.level per package, e.g. publisher: debug.
	LogLevels   map[string]string      `yaml:"log_levels" mapstructure:"log_levels"`
	Subscriber  subscriber.Config      `yaml:"subscriber" mapstructure:"subscriber"`
	Store       memstore.Config        `yaml:"store" mapstructure:"store"`
	Walkthrough walkthrough.Config     `yaml:"walkthrough" mapstructure:"walkthrough"`
	Retry       resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
	Telemetry   TelemetryConfig        `yaml:"telemetry" mapstructure:"telemetry"`
}

// TelemetryConfig switches the OTLP exporters on.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,max=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills unset fields of every section.
func (c *DemoConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().String()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Subscriber.ApplyDefaults()
	c.Walkthrough.ApplyDefaults()
	if c.Retry.MaxAttempts == 0 {
		c.Retry = resilience.DefaultRetryConfig()
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
	if c.Telemetry.Interval == 0 {
		c.Telemetry.Interval = 15 * time.Second
	}
}

// Validate checks every section.
func (c *DemoConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	for name, level := range c.LogLevels {
		lc := c.Logger
		lc.Level = level
		if err := lc.Validate(); err != nil {
			return fmt.Errorf("log_levels.%s: %w", name, err)
		}
	}
	if err := validation.Validate(c.Telemetry); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	if err := c.Subscriber.Validate(); err != nil {
		return fmt.Errorf("subscriber: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Walkthrough.Validate(); err != nil {
		return fmt.Errorf("walkthrough: %w", err)
	}
	if err := validation.Validate(c.Retry); err != nil {
		return fmt.Errorf("retry: %w", err)
	}
	return nil
}
