package config

import (
	"fmt"

	"github.com/kbukum/syncstream/logger"
)

// ServiceConfig contains the essential configuration fields every command needs.
// Commands extend this by embedding it in their own config structs.
//
// Example:
//
//	type DemoConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Subscriber subscriber.Config `yaml:"subscriber" mapstructure:"subscriber"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logger      logger.Config `yaml:"logger" mapstructure:"logger"`
}

// GetServiceConfig returns the base configuration. Embedding structs inherit it.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig { return c }

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logger.Level == "" {
		c.Logger.Level = "debug"
	}
	c.Logger.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("config.logger: %w", err)
	}
	return nil
}
