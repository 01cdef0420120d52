package resilience

import (
	"context"

	"github.com/kbukum/syncstream/subscriber"
)

// Resubscribe subscribes a fresh Operation to source() on every attempt and
// returns the elements of the first attempt that completes without failure.
// Each attempt waits with the timeout configured through opts.
func Resubscribe[T any](ctx context.Context, cfg RetryConfig, source func() subscriber.Publisher[T], opts ...subscriber.Option) ([]T, error) {
	return Retry(ctx, cfg, func() ([]T, error) {
		op := subscriber.NewOperation[T](opts...)
		source().Subscribe(op)
		return op.GetContext(ctx, 0)
	})
}

// ResubscribeFirst is Resubscribe for single-result operations. An attempt
// that completes empty is a success with ok == false.
func ResubscribeFirst[T any](ctx context.Context, cfg RetryConfig, source func() subscriber.Publisher[T], opts ...subscriber.Option) (value T, ok bool, err error) {
	values, err := Resubscribe(ctx, cfg, source, opts...)
	if err != nil || len(values) == 0 {
		return value, false, err
	}
	return values[0], true, nil
}
