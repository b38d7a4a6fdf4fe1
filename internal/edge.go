package internal

// edge is a directed connection from a source node to a sink node. It
// lives in two lists at once: the sink's source list (rebuilt on every
// recomputation) and the source's sink list (doubly-linked via
// nextSink/prevSink so an arbitrary edge can be removed in O(1) when a
// sink disposes or a composite detaches a child).
type edge struct {
	source *node
	sink   *node

	nextSource *edge // next edge in sink's (current) source list

	nextSink *edge // next edge in source's sink list
	prevSink *edge // prev edge in source's sink list
}

// startTracking begins a recomputation of sink: the existing source list
// becomes the "reuse cursor" chain walked by link's fast path, and a
// fresh (empty) source list is built up as the computation re-reads its
// dependencies.
func startTracking(sink *node) {
	sink.reuseCursor = sink.sourcesHead
	sink.sourcesHead = nil
	sink.sourcesTail = nil
	sink.flags |= Running
}

// stopTracking ends a recomputation: whatever is left unconsumed in the
// reuse-cursor chain was read last time but not this time (a conditional
// dependency that stopped being taken) and is unlinked from the source
// side.
func stopTracking(sink *node) {
	for e := sink.reuseCursor; e != nil; {
		next := e.nextSource
		unlink(e)
		e = next
	}
	sink.reuseCursor = nil
	sink.flags &^= Running
}

// appendSource appends an already-existing edge to sink's new source
// list without touching the source side (used by link's cursor-reuse
// path, where the edge object is carried over from the previous run).
func appendSource(sink *node, e *edge) {
	e.nextSource = nil
	if sink.sourcesTail != nil {
		sink.sourcesTail.nextSource = e
	} else {
		sink.sourcesHead = e
	}
	sink.sourcesTail = e
}

// link records that sink read source during its current recomputation,
// creating an edge unless one can be reused. Three fast paths, checked
// in this order:
//
//  1. same-as-tail skip: the most recent read was already this source
//     (the overwhelmingly common case — a dependency read more than once
//     in a row costs nothing).
//  2. cursor reuse: the next not-yet-confirmed edge from the previous
//     run already points at this source — advance past it for free
//     instead of allocating.
//  3. duplicate-sink skip: a linear scan of the source list built so far
//     this run already contains this source (the dependency was read
//     earlier, out of its previous order) — skip rather than double-link.
//
// Anything that reaches none of these allocates a new edge and links it
// into both lists.
func link(source, sink *node) {
	if sink.sourcesTail != nil && sink.sourcesTail.source == source {
		return
	}

	if sink.reuseCursor != nil && sink.reuseCursor.source == source {
		e := sink.reuseCursor
		sink.reuseCursor = e.nextSource
		appendSource(sink, e)
		return
	}

	for e := sink.sourcesHead; e != nil; e = e.nextSource {
		if e.source == source {
			return
		}
	}

	e := &edge{source: source, sink: sink}
	appendSource(sink, e)

	wasEmpty := source.sinksHead == nil
	e.prevSink = source.sinksTail
	if source.sinksTail != nil {
		source.sinksTail.nextSink = e
	} else {
		source.sinksHead = e
	}
	source.sinksTail = e

	if wasEmpty && source.start != nil && !source.started {
		ensureStarted(source)
	}
}

// unlink splices an edge out of its source's sink list in O(1). The
// sink's own source list is managed wholesale by startTracking/
// stopTracking/clearSources, not edge-at-a-time, so this only needs to
// fix up the source side.
func unlink(e *edge) {
	source := e.source

	if e.prevSink != nil {
		e.prevSink.nextSink = e.nextSink
	} else {
		source.sinksHead = e.nextSink
	}

	if e.nextSink != nil {
		e.nextSink.prevSink = e.prevSink
	} else {
		source.sinksTail = e.prevSink
	}

	e.nextSink = nil
	e.prevSink = nil

	if source.sinksHead == nil && source.stop != nil {
		stop := source.stop
		source.stop = nil
		source.started = false
		stop()
	}
}

// clearSources drops every source edge of sink unconditionally. Used on
// dispose and whenever a composite invalidates its structural tracker
// after an add/remove.
func clearSources(sink *node) {
	for e := sink.sourcesHead; e != nil; {
		next := e.nextSource
		unlink(e)
		e = next
	}
	sink.sourcesHead = nil
	sink.sourcesTail = nil
	sink.reuseCursor = nil
}
