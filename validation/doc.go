// Package validation validates configuration structs with struct tags.
//
// Field names in messages follow the mapstructure tag, so an error points at
// the key a user wrote in config.yml:
//
//	type Config struct {
//	    DefaultTimeout time.Duration `mapstructure:"default_timeout" validate:"gt=0"`
//	    Demand         string        `mapstructure:"demand" validate:"oneof=immediate deferred"`
//	}
//	err := validation.Validate(cfg)
package validation
