package subscriber

import (
	"github.com/kbukum/syncstream/logger"
)

// NewPrinter creates a Consumer that logs each element at info level on log
// as it arrives. A nil log uses the "printer" component logger.
func NewPrinter[T any](log *logger.Logger, opts ...Option) *Consumer[T] {
	if log == nil {
		log = logger.Get("printer")
	}
	opts = append([]Option{WithName("printer")}, opts...)
	return NewConsumer(func(v T) {
		log.Info("element", logger.Fields("element", v))
	}, opts...)
}
