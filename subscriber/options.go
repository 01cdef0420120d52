package subscriber

import (
	"time"

	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/observability"
)

type options struct {
	name    string
	demand  Demand
	timeout time.Duration
	log     *logger.Logger
	metrics *observability.StreamMetrics
}

// Option configures a subscriber at construction time.
type Option func(*options)

// WithName labels the subscriber in logs, metrics and spans.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDemand sets the demand policy. Operation subscribers ignore it.
func WithDemand(d Demand) Option {
	return func(o *options) { o.demand = d }
}

// WithTimeout sets the bound used by Await, Get and First.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger. Defaults to the "subscriber" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records stream instruments on m.
func WithMetrics(m *observability.StreamMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// FromConfig applies the timeout and demand policy of cfg.
func FromConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.DefaultTimeout > 0 {
			o.timeout = cfg.DefaultTimeout
		}
		if cfg.Demand != "" {
			o.demand = Demand(cfg.Demand)
		}
	}
}

func buildOptions(defaultName string, opts []Option) options {
	o := options{
		name:    defaultName,
		demand:  DemandImmediate,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 {
		o.timeout = DefaultTimeout
	}
	if o.demand != DemandDeferred {
		o.demand = DemandImmediate
	}
	if o.log == nil {
		o.log = logger.Get("subscriber")
	}
	return o
}
