package reactor

import (
	"context"

	"github.com/solidgraph/reactor/internal"
)

type TaskOption[T any] func(*internal.TaskOptions)

func TaskWithEquals[T any](equals func(a, b T) bool) TaskOption[T] {
	return func(o *internal.TaskOptions) {
		o.Equals = func(a, b any) bool { return equals(as[T](a), as[T](b)) }
	}
}

func TaskWithInitial[T any](initial T) TaskOption[T] {
	return func(o *internal.TaskOptions) {
		o.Initial = initial
		o.HasInitial = true
	}
}

// TaskWithTrack registers reactive reads to perform synchronously before
// each attempt is (re)launched — a State or Memo read inside track aborts
// and restarts the Task the same way it would invalidate a Memo.
func TaskWithTrack[T any](track func()) TaskOption[T] {
	return func(o *internal.TaskOptions) { o.Track = track }
}

// Task is the asynchronous derived signal: async's ctx is the abort
// token, idiomatically a context.Context instead of a bespoke
// abort-controller type. On error the previously committed value is
// retained, unlike Memo which resets to UNSET.
type Task[T any] struct {
	n *internal.Node
}

func NewTask[T any](async func(ctx context.Context, prev T) (T, error), opts ...TaskOption[T]) *Task[T] {
	var o internal.TaskOptions
	for _, opt := range opts {
		opt(&o)
	}
	n := internal.NewTask(internal.CurrentReactor(), func(ctx context.Context, prev any) (any, error) {
		v, err := async(ctx, as[T](prev))
		if err != nil {
			return nil, err
		}
		return v, nil
	}, o)
	return &Task[T]{n: n}
}

func (t *Task[T]) Get() T {
	v, _ := internal.TaskGet(t.n)
	return as[T](v)
}

func (t *Task[T]) GetE() (T, error) {
	v, err := internal.TaskGet(t.n)
	return as[T](v), err
}

func (t *Task[T]) IsPending() bool { return internal.TaskIsPending(t.n) }

func (t *Task[T]) Err() error { return internal.TaskErr(t.n) }

func (t *Task[T]) Abort() { internal.TaskAbort(t.n) }

// Settled closes when the current attempt finishes, letting a caller
// select on completion instead of polling IsPending.
func (t *Task[T]) Settled() <-chan struct{} { return internal.TaskSettled(t.n) }
