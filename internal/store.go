package internal

// newFieldNode builds the plain State child signal backing one key of a
// Store or one item of a List — shared by both composites since neither
// needs anything beyond get/set/equals from its children.
func newFieldNode(r *Reactor, v any) *node {
	n := newNode(r, KindState)
	n.value = v
	return n
}

// detachField severs every sink edge pointing at a field/item signal
// that is being removed structurally, so a disposed child can't still be
// found through a stale edge the next time its (now former) sinks
// refresh.
func detachField(n *node) {
	for e := n.sinksHead; e != nil; {
		next := e.nextSink
		unlink(e)
		e = next
	}
}

type StoreField struct {
	Key   string
	Value any
}

type StoreHooks struct {
	OnAdd    func(keys []string)
	OnChange func(keys []string)
	OnRemove func(keys []string)
}

// Store is the reactive record composite: a fixed field-keyed set of
// child State signals plus one structural node that snapshots them into
// a map on read. Field access goes straight through
// the child signal; Value() is for callers that want the whole record
// as a single dependency.
type Store struct {
	reactor *Reactor
	fields  map[string]*node
	order   []string
	self    *node
	hooks   StoreHooks
}

func NewStore(r *Reactor, initial []StoreField, hooks StoreHooks) *Store {
	s := &Store{reactor: r, fields: make(map[string]*node, len(initial)), hooks: hooks}
	for _, f := range initial {
		s.fields[f.Key] = newFieldNode(r, f.Value)
		s.order = append(s.order, f.Key)
	}

	self := newNode(r, KindMemo)
	self.equals = func(a, b any) bool { return false }
	self.compute = func(prev any) (any, error) { return s.buildValue(), nil }
	self.flags = Dirty
	s.self = self
	return s
}

func (s *Store) buildValue() map[string]any {
	out := make(map[string]any, len(s.order))
	for _, k := range s.order {
		out[k], _ = readValue(s.fields[k])
	}
	return out
}

func (s *Store) Field(name string) (*node, bool) {
	n, ok := s.fields[name]
	return n, ok
}

func (s *Store) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Value links every field as a source on first read (the structural
// memo's compute calls readValue on each one while self is the active
// sink); later reads return the cached record until a field write marks
// it stale, and that recompute reuses the existing edges via the cursor
// unless Set changed the field set, which explicitly invalidates the
// source list.
func (s *Store) Value() map[string]any {
	v, _ := readValue(s.self)
	return v.(map[string]any)
}

// Set diffs newValues against the current fields (StructEquals' deep
// comparison) and applies the
// result as child-signal add/write/detach operations. Add
// and Remove each invalidate the store's own source list — Change does
// not, since the field signal that changed was already a linked source.
func (s *Store) Set(newValues []StoreField) {
	oldVals := make(map[string]any, len(s.order))
	for _, k := range s.order {
		oldVals[k] = s.fields[k].value
	}
	newVals := make(map[string]any, len(newValues))
	newKeys := make([]string, 0, len(newValues))
	for _, f := range newValues {
		newVals[f.Key] = f.Value
		newKeys = append(newKeys, f.Key)
	}

	d := DiffKeyed(s.order, oldVals, newKeys, newVals, StructEquals)
	if !d.Changed {
		return
	}

	for _, k := range d.Change {
		StateSet(s.fields[k], newVals[k])
	}
	for _, k := range d.Add {
		s.fields[k] = newFieldNode(s.reactor, newVals[k])
		s.order = append(s.order, k)
	}
	if len(d.Remove) > 0 {
		removeSet := make(map[string]struct{}, len(d.Remove))
		for _, k := range d.Remove {
			removeSet[k] = struct{}{}
		}
		kept := s.order[:0]
		for _, k := range s.order {
			if _, gone := removeSet[k]; gone {
				detachField(s.fields[k])
				delete(s.fields, k)
				continue
			}
			kept = append(kept, k)
		}
		s.order = kept
	}

	if len(d.Add) > 0 || len(d.Remove) > 0 {
		clearSources(s.self)
		markDirty(s.self)
	}
	s.reactor.schedule()

	if len(d.Add) > 0 && s.hooks.OnAdd != nil {
		s.hooks.OnAdd(d.Add)
	}
	if len(d.Change) > 0 && s.hooks.OnChange != nil {
		s.hooks.OnChange(d.Change)
	}
	if len(d.Remove) > 0 && s.hooks.OnRemove != nil {
		s.hooks.OnRemove(d.Remove)
	}
}
