package reactor

import "github.com/solidgraph/reactor/internal"

// Effect is the terminal observer: never a source, always scheduled
// through the effect queue, runs its body immediately on creation and
// again whenever a tracked source changes.
type Effect struct {
	n *internal.Node
}

// NewEffect runs fn immediately and again on every change to whatever it
// read. If fn returns a non-nil function, that function is registered as
// a cleanup, run before the next execution and on Dispose.
func NewEffect(fn func() func()) *Effect {
	n := internal.NewEffect(internal.CurrentReactor(), fn)
	return &Effect{n: n}
}

func (e *Effect) Dispose() { internal.DisposeEffect(e.n) }

// OnCleanup registers fn against the current owner — inside an Effect's
// body this means "run before the next re-run, and on dispose"; inside a
// Scope with no enclosing Effect it means "run on Scope dispose".
func OnCleanup(fn func()) {
	internal.OnCleanup(internal.CurrentReactor(), fn)
}

// OnError registers a pluggable error reporter on the current owner,
// walked up the owner chain by any panic/error this owner's descendants
// raise that nothing closer already handled.
func OnError(fn func(error)) {
	internal.OnError(internal.CurrentReactor(), fn)
}
