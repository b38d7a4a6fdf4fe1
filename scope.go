package reactor

import "github.com/solidgraph/reactor/internal"

// Scope is an ownership boundary: every Effect and nested Scope created
// inside NewScope's fn becomes its child and is torn down together by one
// Dispose call. Tasks created inside fn are not owned by the Scope, and
// Dispose does not abort them.
type Scope struct {
	n *internal.Node
}

// NewScope creates and enters a Scope for the duration of fn, flushing
// any effects fn's writes enqueued before returning.
func NewScope(fn func()) *Scope {
	n := internal.CreateScope(internal.CurrentReactor(), fn)
	return &Scope{n: n}
}

func (s *Scope) Dispose() { internal.DisposeScope(s.n) }
