package publisher

import (
	"context"
	"time"

	"github.com/kbukum/syncstream/logger"
)

type options struct {
	ctx   context.Context
	delay time.Duration
	log   *logger.Logger
}

// Option configures a publisher.
type Option func(*options)

// WithContext bounds every emission by ctx. Cancellation ends the stream with
// ctx.Err() delivered through OnError.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithDelay waits d before each element.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithLogger sets the logger. Defaults to the "publisher" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	if o.log == nil {
		o.log = logger.Get("publisher")
	}
	return o
}
