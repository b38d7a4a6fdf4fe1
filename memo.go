package reactor

import "github.com/solidgraph/reactor/internal"

type MemoOption[T any] func(*internal.MemoOptions)

func MemoWithEquals[T any](equals func(a, b T) bool) MemoOption[T] {
	return func(o *internal.MemoOptions) {
		o.Equals = func(a, b any) bool { return equals(as[T](a), as[T](b)) }
	}
}

func MemoWithInitial[T any](initial T) MemoOption[T] {
	return func(o *internal.MemoOptions) {
		o.Initial = initial
		o.HasInitial = true
	}
}

// Memo is a synchronous derived signal: compute runs lazily on read,
// receiving the previously committed value so it can double as an
// accumulator with no backing State.
type Memo[T any] struct {
	n *internal.Node
}

func NewMemo[T any](compute func(prev T) T, opts ...MemoOption[T]) *Memo[T] {
	return newMemo(func(prev T) (T, error) { return compute(prev), nil }, opts...)
}

// NewMemoE is the error-observing variant: a compute that fails
// captures the error on the node instead of panicking.
func NewMemoE[T any](compute func(prev T) (T, error), opts ...MemoOption[T]) *Memo[T] {
	return newMemo(compute, opts...)
}

func newMemo[T any](compute func(prev T) (T, error), opts ...MemoOption[T]) *Memo[T] {
	var o internal.MemoOptions
	for _, opt := range opts {
		opt(&o)
	}
	n := internal.NewMemo(internal.CurrentReactor(), func(prev any) (any, error) {
		v, err := compute(as[T](prev))
		if err != nil {
			return nil, err
		}
		return v, nil
	}, o)
	return &Memo[T]{n: n}
}

func (m *Memo[T]) Get() T {
	v, _ := internal.MemoGet(m.n)
	return as[T](v)
}

// GetE returns the captured error alongside the value, for callers that
// opted into NewMemoE. While an error is captured the value is the zero
// value of T: a failed compute does not keep the previous value.
func (m *Memo[T]) GetE() (T, error) {
	v, err := internal.MemoGet(m.n)
	return as[T](v), err
}
