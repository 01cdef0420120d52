// Package publisher provides push-stream producers that honour demand.
//
// Every publisher is cold: each Subscribe starts an independent emission. The
// handshake runs synchronously inside Subscribe and emission starts on a new
// goroutine at the first Request, so subscribers never see callbacks on the
// subscribing goroutine after the handshake.
//
//	sub := subscriber.New[string]()
//	publisher.FromSlice([]string{"a", "b"}).Subscribe(sub)
//	values, err := sub.Get()
//
// Pull-based sources plug in through Iterator:
//
//	p := publisher.FromIterator(func(ctx context.Context) publisher.Iterator[Row] {
//	    return newCursor(ctx, query)
//	})
package publisher
