package subscriber

// Operation is an Observable for calls where only the terminal outcome
// matters. Its demand is always DemandImmediate.
type Operation[T any] struct {
	*Observable[T]
}

var _ Subscriber[any] = (*Operation[any])(nil)

// NewOperation creates a result-only subscriber. A WithDemand option is ignored.
func NewOperation[T any](opts ...Option) *Operation[T] {
	o := buildOptions("operation", opts)
	o.demand = DemandImmediate
	return &Operation[T]{Observable: newObservable[T](o)}
}
