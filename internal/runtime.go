package internal

import (
	"log/slog"
	"sync"

	"github.com/petermattis/goid"
)

// Reactor is one single-threaded scheduling domain: the active-sink and
// active-owner slots, the batch depth counter, and the effect queue.
// There is no multi-reactor interop; Go's natural scheduling domain is a
// goroutine, so CurrentReactor keys a registry by goroutine id.
type Reactor struct {
	activeSink  *node
	activeOwner *node

	batchDepth int
	flushing   bool
	queue      []*node

	root *node // top-level scope, parent of anything created with no explicit owner

	// taskMu guards only the boundary a Task's background goroutine
	// crosses to deliver its settled value back onto this reactor — every
	// other graph mutation is confined to the owning goroutine and needs
	// no lock at all.
	taskMu sync.RWMutex
}

var reactors sync.Map // goid int64 -> *Reactor

// CurrentReactor returns (lazily creating) the calling goroutine's
// reactor.
func CurrentReactor() *Reactor {
	gid := goid.Get()
	if r, ok := reactors.Load(gid); ok {
		return r.(*Reactor)
	}
	r := newReactor()
	reactors.Store(gid, r)
	return r
}

func newReactor() *Reactor {
	r := &Reactor{}
	r.root = newOwner(r, KindScope, nil)
	return r
}

// ForgetCurrentReactor drops the calling goroutine's reactor from the
// registry. Tests use this to get a clean graph between cases without
// restarting a process; ordinary callers never need it.
func ForgetCurrentReactor() {
	reactors.Delete(goid.Get())
}

func (r *Reactor) CurrentOwner() *node {
	if r.activeOwner != nil {
		return r.activeOwner
	}
	return r.root
}

func (r *Reactor) ActiveSink() *node { return r.activeSink }

// Batch defers flushing until the outermost Batch call returns.
func (r *Reactor) Batch(fn func()) {
	r.batchDepth++
	defer func() {
		r.batchDepth--
		if r.batchDepth == 0 {
			r.flush()
		}
	}()
	fn()
}

// Untrack runs fn without capturing dependency edges.
func (r *Reactor) Untrack(fn func()) {
	untrack(r, fn)
}

// schedule is called by every mutator (State.Set, Sensor's apply
// function, Store/List diff application, Task settle) right after
// propagate. Outside a batch it flushes immediately.
func (r *Reactor) schedule() {
	if r.batchDepth == 0 {
		r.flush()
	}
}

func enqueueEffect(n *node) {
	r := n.reactor
	if n.queued {
		return
	}
	n.queued = true
	r.queue = append(r.queue, n)
}

// flush drains the effect queue, reading its length dynamically so
// effects enqueued during the flush (by another effect's writes) run in
// the same pass. The flushing guard prevents
// reentrancy — a write made by an effect body still enqueues, but the
// nested flush attempt is a no-op; the outer loop picks the new entry up
// because it rereads len(r.queue) on every iteration.
func (r *Reactor) flush() {
	if r.flushing {
		return
	}
	r.flushing = true
	defer func() { r.flushing = false }()

	i := 0
	iterations := 0
	for i < len(r.queue) {
		iterations++
		if iterations > maxFlushIterations {
			reportError(r.root, &Error{Kind: ErrUnstableGraph, Message: "possible infinite update loop detected during flush"})
			break
		}

		eff := r.queue[i]
		i++
		eff.queued = false

		if eff.disposed {
			continue
		}
		if eff.flags.has(Dirty) || eff.flags.has(Check) {
			refresh(eff)
		}
	}

	r.queue = r.queue[:0]
}

const maxFlushIterations = 100000

var logger *slog.Logger = slog.Default()

// SetLogger overrides the package-level reporter used for unhandled
// panics/errors that reach no registered OnError hook.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

func logUnhandled(err error) {
	logger.Error("reactor: unhandled error", "error", err)
}
