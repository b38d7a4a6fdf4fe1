package reactor

import (
	"iter"
	"sort"

	"github.com/solidgraph/reactor/internal"
)

// StoreHooks observe field add/change/remove, coalesced per Set call.
type StoreHooks struct {
	OnAdd    func(keys []string)
	OnChange func(keys []string)
	OnRemove func(keys []string)
}

// Store is the reactive record composite: a map[string]T-shaped record
// where every field is its own child State[T] signal.
type Store[T any] struct {
	s *internal.Store
}

func NewStore[T any](initial map[string]T, hooks StoreHooks) *Store[T] {
	fields := make([]internal.StoreField, 0, len(initial))
	for _, k := range sortedKeys(initial) {
		fields = append(fields, internal.StoreField{Key: k, Value: initial[k]})
	}
	s := internal.NewStore(internal.CurrentReactor(), fields, internal.StoreHooks(hooks))
	return &Store[T]{s: s}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Field returns the child signal backing name, or ok=false if name is
// not currently a field of the store.
func (s *Store[T]) Field(name string) (*State[T], bool) {
	n, ok := s.s.Field(name)
	if !ok {
		return nil, false
	}
	return wrapState[T](n), true
}

func (s *Store[T]) Keys() []string { return s.s.Keys() }

// Value reads the whole record as one dependency: the first call links
// every field as a source, later calls return the cached record until a
// field write or a Set marks it stale.
func (s *Store[T]) Value() map[string]T {
	raw := s.s.Value()
	out := make(map[string]T, len(raw))
	for k, v := range raw {
		out[k] = as[T](v)
	}
	return out
}

// Fields iterates (key, signal) pairs in the store's current order.
func (s *Store[T]) Fields() iter.Seq2[string, *State[T]] {
	return func(yield func(string, *State[T]) bool) {
		for _, k := range s.s.Keys() {
			n, ok := s.s.Field(k)
			if !ok {
				continue
			}
			if !yield(k, wrapState[T](n)) {
				return
			}
		}
	}
}

// Set diffs newValues against the current fields and applies the result
// as child-signal add/write/detach operations.
func (s *Store[T]) Set(newValues map[string]T) {
	fields := make([]internal.StoreField, 0, len(newValues))
	for _, k := range sortedKeys(newValues) {
		fields = append(fields, internal.StoreField{Key: k, Value: newValues[k]})
	}
	s.s.Set(fields)
}
