package walkthrough

import (
	"time"

	"github.com/kbukum/syncstream/validation"
)

// Target names the collection a session works on.
type Target struct {
	DB         string `yaml:"db" mapstructure:"db" validate:"required"`
	Collection string `yaml:"collection" mapstructure:"collection" validate:"required"`
}

// Config selects the collections of each session.
//
//	walkthrough:
//	  timeout: 10s
//	  find:   {db: sample_mflix, collection: movies}
//	  insert: {db: training, collection: colors}
type Config struct {
	// Timeout bounds every wait. Zero uses the subscriber default.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	Find    Target        `yaml:"find" mapstructure:"find"`
	Insert  Target        `yaml:"insert" mapstructure:"insert"`
	Update  Target        `yaml:"update" mapstructure:"update"`
	Delete  Target        `yaml:"delete" mapstructure:"delete"`
	Upsert  Target        `yaml:"upsert" mapstructure:"upsert"`
}

// DefaultConfig returns the collections used by the demo.
func DefaultConfig() Config {
	colors := Target{DB: "training", Collection: "colors"}
	return Config{
		Timeout: 10 * time.Second,
		Find:    Target{DB: "sample_mflix", Collection: "movies"},
		Insert:  colors,
		Update:  colors,
		Delete:  colors,
		Upsert:  colors,
	}
}

// ApplyDefaults fills unset targets from DefaultConfig.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	for _, pair := range []struct{ dst, src *Target }{
		{&c.Find, &d.Find},
		{&c.Insert, &d.Insert},
		{&c.Update, &d.Update},
		{&c.Delete, &d.Delete},
		{&c.Upsert, &d.Upsert},
	} {
		if pair.dst.DB == "" {
			pair.dst.DB = pair.src.DB
		}
		if pair.dst.Collection == "" {
			pair.dst.Collection = pair.src.Collection
		}
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
