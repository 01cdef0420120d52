package subscriber

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/syncstream/errors"
	"github.com/kbukum/syncstream/logger"
)

// Failure is one error delivered through OnError.
type Failure struct {
	// Err is the recorded error, always an *errors.AppError.
	Err *errors.AppError
	// Wrapped is true when the publisher delivered a foreign error that was
	// wrapped as UNEXPECTED, false when it delivered an *errors.AppError.
	Wrapped bool
}

// Observable is the base subscriber: it records the handshake, every element
// and the terminal signal, and lets one caller block until that signal arrives.
//
// Callbacks may run on any goroutine. The barrier opens exactly once, on the
// first terminal signal; elements delivered after that are dropped.
type Observable[T any] struct {
	id   string
	opts options
	log  *logger.Logger

	mu           sync.Mutex
	subscription Subscription
	received     []T
	failures     []Failure
	err          *errors.AppError // first failure seen before completion
	completed    bool
	requested    bool // Unbounded demand already issued
	awaiting     bool // a deferred-demand caller is waiting for the handshake

	done chan struct{}
}

var _ Subscriber[any] = (*Observable[any])(nil)

// New creates a base subscriber. The demand policy defaults to DemandImmediate.
func New[T any](opts ...Option) *Observable[T] {
	return newObservable[T](buildOptions("observable", opts))
}

func newObservable[T any](o options) *Observable[T] {
	id := uuid.NewString()
	return &Observable[T]{
		id:   id,
		opts: o,
		log: o.log.WithFields(logger.Fields(
			logger.FieldSubscriberID, id,
			"subscriber", o.name,
		)),
		done: make(chan struct{}),
	}
}

// OnSubscribe stores the subscription. Only the first handshake counts; later
// ones are ignored.
func (o *Observable[T]) OnSubscribe(s Subscription) {
	if s == nil {
		o.log.Warn("ignoring nil subscription")
		return
	}

	o.mu.Lock()
	if o.subscription != nil {
		o.mu.Unlock()
		o.log.Warn("ignoring second subscription")
		return
	}
	o.subscription = s
	request := !o.requested && (o.opts.demand == DemandImmediate || o.awaiting)
	if request {
		o.requested = true
	}
	o.mu.Unlock()

	o.opts.metrics.RecordSubscribe(context.Background(), o.opts.name)
	o.log.Debug("subscribed", logger.Fields(logger.FieldDemand, string(o.opts.demand)))

	// Request outside the lock: publishers may deliver synchronously.
	if request {
		s.Request(Unbounded)
	}
}

// OnNext appends value to the received elements.
func (o *Observable[T]) OnNext(value T) {
	o.accept(value)
}

// accept appends value unless the barrier is already open and reports
// whether it did.
func (o *Observable[T]) accept(value T) bool {
	o.mu.Lock()
	if o.completed {
		o.mu.Unlock()
		o.log.Debug("dropping element delivered after completion")
		return false
	}
	o.received = append(o.received, value)
	o.mu.Unlock()

	o.opts.metrics.RecordElement(context.Background(), o.opts.name)
	return true
}

// OnError records err and then completes. An *errors.AppError, found
// through any %w chain, is stored as is; anything else is wrapped as
// UNEXPECTED with err as the cause.
func (o *Observable[T]) OnError(err error) {
	failure := classify(err)

	o.mu.Lock()
	o.failures = append(o.failures, failure)
	late := o.completed
	if !late && o.err == nil {
		o.err = failure.Err
	}
	o.mu.Unlock()

	o.opts.metrics.RecordFailure(context.Background(), o.opts.name, string(failure.Err.Code))
	if late {
		o.log.Warn("failure delivered after completion", logger.Fields(
			logger.FieldErrorCode, string(failure.Err.Code),
			logger.FieldError, failure.Err.Error(),
		))
	} else {
		o.log.Debug("publisher failed", logger.Fields(
			logger.FieldErrorCode, string(failure.Err.Code),
			logger.FieldError, failure.Err.Error(),
		))
	}

	o.OnComplete()
}

func classify(err error) Failure {
	appErr, ok := errors.AsAppError(err)
	switch {
	case ok && appErr != nil:
		return Failure{Err: appErr}
	case ok, err == nil:
		// typed nil *AppError, or no error at all
		return Failure{Err: errors.Unexpected(nil), Wrapped: true}
	default:
		return Failure{Err: errors.Unexpected(err), Wrapped: true}
	}
}

// OnComplete opens the barrier. Only the first call has an effect.
func (o *Observable[T]) OnComplete() {
	o.mu.Lock()
	if o.completed {
		o.mu.Unlock()
		return
	}
	o.completed = true
	n := len(o.received)
	o.mu.Unlock()

	close(o.done)
	o.log.Debug("completed", logger.Fields(logger.FieldElements, n))
}

// ID returns the unique id used to correlate this subscriber's log lines.
func (o *Observable[T]) ID() string { return o.id }

// Name returns the subscriber's label.
func (o *Observable[T]) Name() string { return o.opts.name }

// Demand returns the demand policy in effect.
func (o *Observable[T]) Demand() Demand { return o.opts.demand }

// Subscription returns the stored subscription, or nil before the handshake.
func (o *Observable[T]) Subscription() Subscription {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.subscription
}

// Received returns a copy of the elements received so far, in delivery order.
func (o *Observable[T]) Received() []T {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]T, len(o.received))
	copy(out, o.received)
	return out
}

// Err returns the first captured failure, or nil. It never blocks.
func (o *Observable[T]) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err == nil {
		return nil
	}
	return o.err
}

// Failures returns every failure delivered, including any after the first.
func (o *Observable[T]) Failures() []Failure {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Failure, len(o.failures))
	copy(out, o.failures)
	return out
}

// Completed reports whether a terminal signal has arrived.
func (o *Observable[T]) Completed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.completed
}

// Done returns a channel closed when the terminal signal arrives.
func (o *Observable[T]) Done() <-chan struct{} { return o.done }
