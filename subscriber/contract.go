package subscriber

import "math"

// Unbounded is the demand that asks a publisher for every remaining element.
const Unbounded int64 = math.MaxInt64

// Subscription is handed to a subscriber during the handshake and is the only
// way to start element delivery.
type Subscription interface {
	// Request signals that n more elements may be delivered. Repeated calls
	// add up; Unbounded means no limit.
	Request(n int64)
}

// SubscriptionFunc adapts a function to the Subscription interface.
type SubscriptionFunc func(n int64)

// Request calls f(n).
func (f SubscriptionFunc) Request(n int64) { f(n) }

// Subscriber receives the callbacks of one publisher.
//
// Publishers call OnSubscribe first, then OnNext any number of times, then
// exactly one of OnError or OnComplete, all sequentially.
type Subscriber[T any] interface {
	OnSubscribe(s Subscription)
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// Publisher starts an asynchronous operation and streams its results to s.
type Publisher[T any] interface {
	Subscribe(s Subscriber[T])
}
