// Package resilience retries failed stream operations.
//
// Subscribers are single-use, so a retry never re-arms the instance that
// failed. Resubscribe asks the caller for a fresh publisher per attempt and
// subscribes a fresh subscriber.Operation to it:
//
//	docs, err := resilience.Resubscribe(ctx, resilience.DefaultRetryConfig(),
//	    func() subscriber.Publisher[memstore.Document] { return coll.Find(filter) },
//	    subscriber.WithTimeout(2*time.Second),
//	)
//
// By default only errors marked retryable (timeouts, unavailable stores,
// stream failures) are retried.
package resilience
