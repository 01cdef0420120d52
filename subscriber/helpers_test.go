package subscriber

import (
	"sync"
)

// recordingSubscription records every Request call and optionally reacts to it.
type recordingSubscription struct {
	mu        sync.Mutex
	requests  []int64
	onRequest func(n int64)
}

func (s *recordingSubscription) Request(n int64) {
	s.mu.Lock()
	s.requests = append(s.requests, n)
	fn := s.onRequest
	s.mu.Unlock()
	if fn != nil {
		fn(n)
	}
}

func (s *recordingSubscription) Requests() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.requests))
	copy(out, s.requests)
	return out
}

// emit delivers values then completes, the way a well-behaved publisher does
// once demand has been granted.
func emit[T any](s Subscriber[T], values ...T) {
	for _, v := range values {
		s.OnNext(v)
	}
	s.OnComplete()
}

// goPublisher delivers values and a terminal signal on its own goroutine as
// soon as demand is requested.
type goPublisher[T any] struct {
	values []T
	err    error
}

func (p *goPublisher[T]) Subscribe(s Subscriber[T]) {
	var once sync.Once
	s.OnSubscribe(SubscriptionFunc(func(n int64) {
		once.Do(func() {
			go func() {
				for _, v := range p.values {
					s.OnNext(v)
				}
				if p.err != nil {
					s.OnError(p.err)
					return
				}
				s.OnComplete()
			}()
		})
	}))
}
