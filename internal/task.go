package internal

import "context"

// Task is the asynchronous derived node. Unlike Memo it cannot read its
// sources from inside the async body — that body runs on its own
// goroutine, and a Task's asynchronous continuation must never touch
// graph state directly. Dependencies are
// instead captured by an optional synchronous Track thunk, run under the
// same startTracking/stopTracking bracket a Memo uses, immediately before
// each attempt is spawned; the captured prev value and whatever Track
// read are then closed over by the goroutine.
type taskState struct {
	fn      func(ctx context.Context, prev any) (any, error)
	track   func()
	cancel  context.CancelFunc
	gen     uint64
	pending bool
	settled chan struct{}
}

type TaskOptions struct {
	Equals     func(a, b any) bool
	Initial    any
	HasInitial bool

	// Track, if set, runs synchronously before each attempt (including
	// the first) to register reactive dependencies — reading a State or
	// Memo here means a later write to it aborts and restarts the Task,
	// the same way a changed source invalidates a Memo.
	Track func()
}

func NewTask(r *Reactor, fn func(ctx context.Context, prev any) (any, error), opts TaskOptions) *node {
	n := newNode(r, KindTask)
	n.async = &taskState{fn: fn, track: opts.Track, settled: closedChan()}
	if opts.Equals != nil {
		n.equals = opts.Equals
	}
	if opts.HasInitial {
		n.value = opts.Initial
	} else {
		n.value = Unset
	}
	n.flags = Dirty
	return n
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// recomputeTask re-establishes the Track dependencies, then (re)launches
// the async attempt. The node's own flags clear to CLEAN immediately —
// its committed value/error do not change until the attempt settles, so
// there is nothing left for refresh to wait on synchronously.
func recomputeTask(n *node) {
	ts := n.async

	startTracking(n)
	n.flags |= Running
	if ts.track != nil {
		func() {
			defer func() {
				if p := recover(); p != nil {
					reportError(n, panicToError(p))
				}
			}()
			runAsSink(n, ts.track)
		}()
	}
	stopTracking(n)
	n.flags &^= (Running | Dirty | Check)

	launchTask(n)
}

func launchTask(n *node) {
	ts := n.async
	r := n.reactor

	r.taskMu.Lock()
	if ts.cancel != nil {
		ts.cancel()
	}
	ts.gen++
	gen := ts.gen
	ctx, cancel := context.WithCancel(context.Background())
	ts.cancel = cancel
	ts.pending = true
	ts.settled = make(chan struct{})
	r.taskMu.Unlock()

	prev := n.value
	fn := ts.fn

	go func() {
		val, err := runTaskBody(ctx, fn, prev)

		r.taskMu.Lock()
		defer r.taskMu.Unlock()

		if ts.gen != gen {
			return
		}
		ts.pending = false
		close(ts.settled)

		if ctx.Err() != nil {
			n.err = &Error{Kind: ErrAbort, Message: "task aborted"}
			return
		}

		if err != nil {
			n.err = err
			// unlike Memo, the previously committed value is retained on
			// error, not reset to UNSET.
			propagate(n)
			r.schedule()
			return
		}

		changed := !n.initialized || !n.equals(n.value, val)
		n.initialized = true
		n.err = nil
		n.value = val
		if changed {
			propagate(n)
			r.schedule()
		}
	}()
}

func runTaskBody(ctx context.Context, fn func(context.Context, any) (any, error), prev any) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicToError(p)
		}
	}()
	return fn(ctx, prev)
}

// abortTask cancels the in-flight attempt, if any; called by markDirty
// when a Track dependency changes or the node is disposed. The attempt's
// goroutine is still running until it observes ctx.Err(), but its result
// is discarded on arrival because its generation has gone stale.
func abortTask(n *node) {
	ts := n.async
	if ts == nil {
		return
	}
	n.reactor.taskMu.RLock()
	cancel := ts.cancel
	n.reactor.taskMu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

func TaskGet(n *node) (any, error) {
	return readValue(n)
}

func TaskIsPending(n *node) bool {
	n.reactor.taskMu.RLock()
	defer n.reactor.taskMu.RUnlock()
	return n.async.pending
}

func TaskErr(n *node) error {
	n.reactor.taskMu.RLock()
	defer n.reactor.taskMu.RUnlock()
	return n.err
}

func TaskAbort(n *node) {
	abortTask(n)
}

// TaskSettled returns a channel that closes when the current attempt
// settles. If no attempt is in flight, it returns an already-closed
// channel so a select on it never blocks.
func TaskSettled(n *node) <-chan struct{} {
	n.reactor.taskMu.RLock()
	defer n.reactor.taskMu.RUnlock()
	return n.async.settled
}
