package publisher

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/kbukum/syncstream/errors"
	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/subscriber"
)

// Publisher emits the values of an Iterator to each subscriber, one element
// per unit of requested demand.
type Publisher[T any] struct {
	create func(ctx context.Context) Iterator[T]
	opts   options
}

var _ subscriber.Publisher[any] = (*Publisher[any])(nil)

// FromIterator creates a publisher that pulls from a fresh iterator per
// subscription.
func FromIterator[T any](create func(ctx context.Context) Iterator[T], opts ...Option) *Publisher[T] {
	return &Publisher[T]{create: create, opts: buildOptions(opts)}
}

// FromSlice creates a publisher that emits items in order.
func FromSlice[T any](items []T, opts ...Option) *Publisher[T] {
	return FromIterator(func(context.Context) Iterator[T] {
		return &sliceIter[T]{items: items}
	}, opts...)
}

// FromFunc creates a publisher that calls fn once per subscription, off the
// subscribing goroutine, and emits the returned batch. An error from fn is
// delivered through OnError.
func FromFunc[T any](fn func(ctx context.Context) ([]T, error), opts ...Option) *Publisher[T] {
	return FromIterator(func(context.Context) Iterator[T] {
		return &batchIter[T]{fn: fn}
	}, opts...)
}

// Just creates a publisher that emits values.
func Just[T any](values ...T) *Publisher[T] {
	return FromSlice(values)
}

// Empty creates a publisher that completes without elements.
func Empty[T any](opts ...Option) *Publisher[T] {
	return FromSlice[T](nil, opts...)
}

// Fail creates a publisher that fails with err as soon as demand arrives.
func Fail[T any](err error, opts ...Option) *Publisher[T] {
	return FromIterator(func(context.Context) Iterator[T] {
		return errIter[T]{err: err}
	}, opts...)
}

// Subscribe performs the handshake on the calling goroutine. Emission starts
// at the first Request.
func (p *Publisher[T]) Subscribe(s subscriber.Subscriber[T]) {
	sub := &subscription[T]{
		pub:  p,
		sub:  s,
		wake: make(chan struct{}, 1),
	}
	s.OnSubscribe(sub)
}

type subscription[T any] struct {
	pub *Publisher[T]
	sub subscriber.Subscriber[T]

	mu      sync.Mutex
	demand  int64
	invalid bool // a non-positive request arrived
	started bool
	wake    chan struct{}
}

// Request adds n to the outstanding demand. Demand saturates at
// subscriber.Unbounded. A non-positive n ends the stream with INVALID_INPUT.
func (s *subscription[T]) Request(n int64) {
	s.mu.Lock()
	if n <= 0 {
		s.invalid = true
	} else if s.demand > math.MaxInt64-n {
		s.demand = math.MaxInt64
	} else {
		s.demand += n
	}
	start := !s.started
	s.started = true
	s.mu.Unlock()

	if start {
		go s.run()
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// take blocks until one unit of demand is available. It returns false and
// the terminal error when the stream must end instead.
func (s *subscription[T]) take(ctx context.Context) (bool, error) {
	for {
		s.mu.Lock()
		if s.invalid {
			s.mu.Unlock()
			return false, errors.InvalidInput("request", "demand must be positive")
		}
		if s.demand > 0 {
			if s.demand != subscriber.Unbounded {
				s.demand--
			}
			s.mu.Unlock()
			return true, nil
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

func (s *subscription[T]) run() {
	ctx := s.pub.opts.ctx
	log := s.pub.opts.log
	iter := s.pub.create(ctx)
	defer iter.Close()

	// Terminal signals need no demand, so the iterator is pulled before
	// demand is taken.
	emitted := 0
	for {
		if err := ctx.Err(); err != nil {
			s.fail(log, err, emitted)
			return
		}

		val, more, err := iter.Next(ctx)
		if err != nil {
			s.fail(log, err, emitted)
			return
		}
		if !more {
			log.Debug("publisher completed", logger.Fields(logger.FieldElements, emitted))
			s.sub.OnComplete()
			return
		}

		if ok, err := s.take(ctx); !ok {
			s.fail(log, err, emitted)
			return
		}

		if d := s.pub.opts.delay; d > 0 {
			timer := time.NewTimer(d)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				s.fail(log, ctx.Err(), emitted)
				return
			}
		}
		s.sub.OnNext(val)
		emitted++
	}
}

func (s *subscription[T]) fail(log *logger.Logger, err error, emitted int) {
	log.Debug("publisher failed", logger.Fields(
		logger.FieldError, err.Error(),
		logger.FieldElements, emitted,
	))
	s.sub.OnError(err)
}

// Never returns a publisher that completes the handshake and then stays
// silent forever.
func Never[T any]() subscriber.Publisher[T] {
	return never[T]{}
}

type never[T any] struct{}

func (never[T]) Subscribe(s subscriber.Subscriber[T]) {
	s.OnSubscribe(subscriber.SubscriptionFunc(func(int64) {}))
}
