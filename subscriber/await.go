package subscriber

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/syncstream/errors"
	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/observability"
)

const (
	timeoutOperation   = "Publisher onComplete"
	interruptedMessage = "Interrupted waiting for observation"
)

// AwaitContext blocks until the terminal signal arrives, timeout elapses or
// ctx is done, whichever comes first. A timeout <= 0 uses the configured
// default.
//
// Under DemandDeferred the first call requests Unbounded before it waits.
// It returns the first captured failure, a TIMEOUT error, an INTERRUPTED
// error wrapping ctx.Err(), or nil. Once the barrier is open it returns the
// cached outcome immediately.
func (o *Observable[T]) AwaitContext(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = o.opts.timeout
	}
	o.requestDeferred()

	// Completed instances answer without a span or metric.
	select {
	case <-o.done:
		return o.Err()
	default:
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanAwait, trace.WithAttributes(
		attribute.String(observability.AttrSubscriber, o.opts.name),
		attribute.Int64(observability.AttrTimeoutMs, timeout.Milliseconds()),
	))
	start := time.Now()

	outcome, err := o.wait(ctx, timeout)

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.String(observability.AttrOutcome, outcome),
		attribute.Int(observability.AttrElements, o.count()),
	)
	observability.EndSpan(span, err)
	o.opts.metrics.RecordAwait(ctx, o.opts.name, outcome, elapsed)

	if outcome == observability.OutcomeTimeout || outcome == observability.OutcomeInterrupted {
		o.log.WithContext(ctx).Warn("await ended without a terminal signal", logger.Fields(
			logger.FieldOperation, "await",
			logger.FieldDuration, elapsed.Milliseconds(),
			"outcome", outcome,
		))
	}
	return err
}

func (o *Observable[T]) wait(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-o.done:
		if err := o.Err(); err != nil {
			return observability.OutcomeFailed, err
		}
		return observability.OutcomeCompleted, nil
	case <-timer.C:
		return observability.OutcomeTimeout, errors.Timeout(timeoutOperation)
	case <-ctx.Done():
		return observability.OutcomeInterrupted, errors.Interrupted(interruptedMessage, ctx.Err())
	}
}

// requestDeferred issues the deferred demand once. Without a subscription yet
// it marks the caller as waiting so OnSubscribe requests instead.
func (o *Observable[T]) requestDeferred() {
	o.mu.Lock()
	if o.opts.demand != DemandDeferred || o.requested {
		o.mu.Unlock()
		return
	}
	o.awaiting = true
	s := o.subscription
	if s == nil {
		o.mu.Unlock()
		return
	}
	o.requested = true
	o.mu.Unlock()

	s.Request(Unbounded)
}

func (o *Observable[T]) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.received)
}

// Await waits with the configured default timeout.
func (o *Observable[T]) Await() error {
	return o.AwaitContext(context.Background(), 0)
}

// AwaitTimeout waits at most timeout.
func (o *Observable[T]) AwaitTimeout(timeout time.Duration) error {
	return o.AwaitContext(context.Background(), timeout)
}

// Get waits with the default timeout and returns every received element.
func (o *Observable[T]) Get() ([]T, error) {
	return o.GetContext(context.Background(), 0)
}

// GetTimeout waits at most timeout and returns every received element.
func (o *Observable[T]) GetTimeout(timeout time.Duration) ([]T, error) {
	return o.GetContext(context.Background(), timeout)
}

// GetContext is Get bounded by ctx as well as timeout. On failure it returns
// no elements; Received still exposes what arrived before the failure.
func (o *Observable[T]) GetContext(ctx context.Context, timeout time.Duration) ([]T, error) {
	if err := o.AwaitContext(ctx, timeout); err != nil {
		return nil, err
	}
	return o.Received(), nil
}

// First waits with the default timeout and returns the first element.
// An empty stream yields (zero, false, nil).
func (o *Observable[T]) First() (T, bool, error) {
	return o.FirstContext(context.Background(), 0)
}

// FirstContext is First bounded by ctx as well as timeout.
func (o *Observable[T]) FirstContext(ctx context.Context, timeout time.Duration) (T, bool, error) {
	var zero T
	if err := o.AwaitContext(ctx, timeout); err != nil {
		return zero, false, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.received) == 0 {
		return zero, false, nil
	}
	return o.received[0], true, nil
}
