package reactor

import "github.com/solidgraph/reactor/internal"

// KeyedItem is one entry of an externally-delivered CollectionChange.
type KeyedItem[T any] struct {
	Key   string
	Value T
}

// CollectionChange is the diff-shaped value an externally-driven
// Collection's start callback applies.
type CollectionChange[T any] struct {
	Add    []KeyedItem[T]
	Change []KeyedItem[T]
	Remove []string
}

// Collection covers two creation patterns under one reading interface:
// externally-driven (NewCollection, lazy-lifecycle like a Sensor) and
// derived (Derive/DeriveTask, built from a List or another Collection).
// Value() returns the current key order; read an item's value through
// ByKey.
type Collection[T any] struct {
	c *internal.Collection
}

// NewCollection builds an externally-driven Collection: start runs lazily
// on first sink attachment and receives an apply function taking a
// CollectionChange; the cleanup it returns runs on last detachment.
func NewCollection[T any](start func(apply func(CollectionChange[T])) func(), initial map[string]T) *Collection[T] {
	items := make([]internal.KeyedItem, 0, len(initial))
	for _, k := range sortedKeys(initial) {
		items = append(items, internal.KeyedItem{Key: k, Value: initial[k]})
	}
	c := internal.NewCollection(internal.CurrentReactor(), func(apply func(internal.CollectionChange)) func() {
		return start(func(chg CollectionChange[T]) {
			apply(internal.CollectionChange{
				Add:    keyedItemsToInternal(chg.Add),
				Change: keyedItemsToInternal(chg.Change),
				Remove: chg.Remove,
			})
		})
	}, items, nil)
	return &Collection[T]{c: c}
}

func keyedItemsToInternal[T any](items []KeyedItem[T]) []internal.KeyedItem {
	out := make([]internal.KeyedItem, len(items))
	for i, it := range items {
		out[i] = internal.KeyedItem{Key: it.Key, Value: it.Value}
	}
	return out
}

func (c *Collection[T]) Keys() []string { return c.c.Keys() }

func (c *Collection[T]) ByKey(k string) (*State[T], bool) {
	n, ok := c.c.ByKey(k)
	if !ok {
		return nil, false
	}
	return wrapState[T](n), true
}

func (c *Collection[T]) Value() []string { return c.c.Value() }

func (c *Collection[T]) internalSelf() *internal.Node { return c.c.Self() }

func (c *Collection[T]) internalItemValue() func(string) (any, error) {
	return c.c.ItemValue
}
