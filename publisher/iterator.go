package publisher

import (
	"context"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

// batchIter calls fn once on the first Next and then yields its result.
type batchIter[T any] struct {
	fn    func(ctx context.Context) ([]T, error)
	done  bool
	items sliceIter[T]
}

func (it *batchIter[T]) Next(ctx context.Context) (T, bool, error) {
	if !it.done {
		it.done = true
		items, err := it.fn(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		it.items.items = items
	}
	return it.items.Next(ctx)
}

func (it *batchIter[T]) Close() error { return nil }

type errIter[T any] struct{ err error }

func (it errIter[T]) Next(context.Context) (T, bool, error) {
	var zero T
	return zero, false, it.err
}

func (it errIter[T]) Close() error { return nil }
