// Package subscriber bridges an asynchronous, demand-driven push stream to
// blocking calls.
//
// A Publisher delivers a handshake (OnSubscribe), zero or more elements
// (OnNext) and exactly one terminal signal (OnError or OnComplete). An
// Observable records all of it and lets the calling goroutine block until the
// terminal signal arrives:
//
//	sub := subscriber.NewOperation[InsertResult]()
//	collection.InsertOne(doc).Subscribe(sub)
//	res, ok, err := sub.First()
//
// Every retrieval call (Await, Get, First and their Timeout/Context forms)
// funnels through AwaitContext, so timeout, cancellation and failure handling
// behave identically. The first failure delivered by the publisher is the one
// returned; later ones are kept in Failures only.
//
// An instance serves exactly one operation. Build a new one per call; a
// completed instance keeps answering with the same cached outcome.
//
// A timeout does not cancel the publisher. The operation may keep running,
// and keep calling the subscriber, after AwaitContext has returned a TIMEOUT
// error; elements arriving then are still recorded until the terminal signal.
package subscriber
