package bootstrap

import (
	"time"

	"github.com/kbukum/syncstream/logger"
)

// Option tunes NewApp. Options do not depend on the config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger makes the app log through l and leaves the global logger alone.
// Tests pass logger.NewNop().
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds OnStop hooks plus component shutdown after the
// task returns. The default is 15s.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = &d }
}
