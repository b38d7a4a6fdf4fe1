package reactor

import "github.com/solidgraph/reactor/internal"

// Batch defers flushing until the outermost Batch call returns, so
// several writes that each invalidate the same Effect only run it once.
func Batch(fn func()) {
	internal.CurrentReactor().Batch(fn)
}

// Untrack runs fn with dependency tracking suspended: reads inside it
// create no edges, even within a Memo/Effect/Task's recompute.
func Untrack[T any](fn func() T) T {
	var result T
	internal.CurrentReactor().Untrack(func() { result = fn() })
	return result
}
