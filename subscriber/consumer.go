package subscriber

import "sync/atomic"

// Consumer is an Observable that also hands every accepted element to a
// callback, for side effects such as printing while the stream is running.
// The callback runs on the publisher's goroutine, before the barrier opens.
type Consumer[T any] struct {
	*Observable[T]
	fn atomic.Pointer[func(T)]
}

var _ Subscriber[any] = (*Consumer[any])(nil)

// NewConsumer creates a pass-through subscriber. fn may be nil and set later.
func NewConsumer[T any](fn func(T), opts ...Option) *Consumer[T] {
	c := &Consumer[T]{Observable: newObservable[T](buildOptions("consumer", opts))}
	c.SetConsumer(fn)
	return c
}

// SetConsumer replaces the per-element callback. It is safe to call while
// the publisher is emitting: the slot is swapped atomically, so each element
// goes either to the old callback or to the new one.
func (c *Consumer[T]) SetConsumer(fn func(T)) {
	c.fn.Store(&fn)
}

// OnNext records value and then passes it to the callback.
func (c *Consumer[T]) OnNext(value T) {
	if !c.accept(value) {
		return
	}
	if fn := c.fn.Load(); fn != nil && *fn != nil {
		(*fn)(value)
	}
}
