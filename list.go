package reactor

import (
	"cmp"

	"github.com/solidgraph/reactor/internal"
)

// KeyStrategy produces the key-generation function a List uses to
// assign a stable string key to each new item.
type KeyStrategy[T any] func() internal.KeyFn

func KeyCounter[T any]() KeyStrategy[T] {
	return func() internal.KeyFn { return internal.KeyCounter() }
}

func KeyPrefixed[T any](prefix string) KeyStrategy[T] {
	return func() internal.KeyFn { return internal.KeyPrefixed(prefix) }
}

func KeyFunc[T any](fn func(T) string) KeyStrategy[T] {
	return func() internal.KeyFn {
		return internal.KeyFunc(func(v any) string { return fn(as[T](v)) })
	}
}

// KeyUUID generates a random github.com/google/uuid string per item —
// the natural Go analogue of "give me a unique key, I don't care what".
func KeyUUID[T any]() KeyStrategy[T] {
	return func() internal.KeyFn { return internal.KeyUUID() }
}

type ListHooks struct {
	OnAdd    func(keys []string)
	OnChange func(keys []string)
	OnRemove func(keys []string)
	OnSort   func(order []string)
}

// List is the reactive keyed sequence: stable per-item keys that
// survive sort/splice/reorder, each backed by its own State[T].
type List[T any] struct {
	l *internal.List
}

func NewList[T any](initial []T, keyStrategy KeyStrategy[T], hooks ListHooks) *List[T] {
	if keyStrategy == nil {
		keyStrategy = KeyCounter[T]()
	}
	vals := make([]any, len(initial))
	for i, v := range initial {
		vals[i] = v
	}
	l := internal.NewList(internal.CurrentReactor(), vals, keyStrategy(), internal.ListHooks(hooks))
	return &List[T]{l: l}
}

func (l *List[T]) Len() int      { return l.l.Len() }
func (l *List[T]) Keys() []string { return l.l.Keys() }

func (l *List[T]) At(i int) (*State[T], bool) {
	n, ok := l.l.At(i)
	if !ok {
		return nil, false
	}
	return wrapState[T](n), true
}

func (l *List[T]) ByKey(k string) (*State[T], bool) {
	n, ok := l.l.ByKey(k)
	if !ok {
		return nil, false
	}
	return wrapState[T](n), true
}

func (l *List[T]) Value() []T {
	raw := l.l.Value()
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = as[T](v)
	}
	return out
}

// Add assigns item a key via the List's KeyStrategy and appends it. It
// returns ErrDuplicateKey if that key already names an item in the list.
func (l *List[T]) Add(item T) (string, error) { return l.l.Add(item) }

// Remove accepts either an int index or a string key.
func (l *List[T]) Remove(indexOrKey any) bool { return l.l.Remove(indexOrKey) }

// Splice mirrors slice-language array splicing; it returns the removed
// items' current values, or ErrDuplicateKey if two inserted items (or an
// inserted item and a surviving one) would end up sharing a key.
func (l *List[T]) Splice(start, deleteCount int, items ...T) ([]T, error) {
	raw := make([]any, len(items))
	for i, v := range items {
		raw[i] = v
	}
	removed, err := l.l.Splice(start, deleteCount, raw...)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(removed))
	for i, v := range removed {
		out[i] = as[T](v)
	}
	return out, nil
}

// Sort reorders the keys vector only — signals are never destroyed or
// re-keyed by a sort.
func (l *List[T]) Sort(cmp func(a, b T) int) {
	l.l.Sort(func(a, b any) int { return cmp(as[T](a), as[T](b)) })
}

// Set diffs items against the current sequence and applies the result,
// returning ErrDuplicateKey if two of items would land on the same key.
func (l *List[T]) Set(items []T) error {
	raw := make([]any, len(items))
	for i, v := range items {
		raw[i] = v
	}
	return l.l.Set(raw)
}

func (l *List[T]) Update(fn func([]T) []T) error {
	return l.Set(fn(l.Value()))
}

// SortOrdered sorts a List whose T satisfies cmp.Ordered without
// requiring the caller to write a trivial comparator by hand — the
// generic type parameter needed here can't live on a List[T] method, so
// this is a package-level function instead.
func SortOrdered[T cmp.Ordered](l *List[T]) {
	l.Sort(func(a, b T) int { return cmp.Compare(a, b) })
}

func (l *List[T]) internalSelf() *internal.Node { return l.l.Self() }

func (l *List[T]) internalItemValue() func(string) (any, error) {
	return l.l.ItemValue
}
