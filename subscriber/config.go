package subscriber

import (
	"time"

	"github.com/kbukum/syncstream/validation"
)

// DefaultTimeout bounds the no-argument retrieval calls when nothing else is configured.
const DefaultTimeout = 60 * time.Second

// Demand selects when a subscriber asks its publisher for elements.
type Demand string

const (
	// DemandImmediate requests Unbounded as soon as the handshake arrives.
	DemandImmediate Demand = "immediate"
	// DemandDeferred requests Unbounded only once a caller starts waiting.
	DemandDeferred Demand = "deferred"
)

// Config is the file-level configuration for subscribers.
//
//	subscriber:
//	  default_timeout: 60s
//	  demand: immediate
type Config struct {
	DefaultTimeout time.Duration `yaml:"default_timeout" mapstructure:"default_timeout" validate:"gt=0"`
	Demand         string        `yaml:"demand" mapstructure:"demand" validate:"oneof=immediate deferred"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultTimeout
	}
	if c.Demand == "" {
		c.Demand = string(DemandImmediate)
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
