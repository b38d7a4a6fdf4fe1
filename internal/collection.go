package internal

import "context"

// KeyedItem is one entry of an externally-delivered collection change.
type KeyedItem struct {
	Key   string
	Value any
}

// CollectionChange is the diff-shaped value an externally-driven
// Collection's start callback applies: adds and changes carry the new
// value, removes carry only the key.
type CollectionChange struct {
	Add    []KeyedItem
	Change []KeyedItem
	Remove []string
}

// Collection covers two creation patterns under one reading interface
// (Keys/ByKey/Value): externally-driven (built by
// NewCollection, lazy-lifecycle like a Sensor) and derived (built by
// DeriveCollection from a List or another Collection, one per-item Memo
// or Task tracking each source item). Value() returns the keys vector in
// both cases — the per-item values are read individually through ByKey,
// never bundled into one atomic snapshot, since a derived Collection's
// items may be Tasks mid-flight.
type Collection struct {
	reactor *Reactor
	items   map[string]*node
	order   []string
	self    *node
}

// NewCollection builds an externally-driven Collection: start runs lazily
// on first sink attachment (mirroring Sensor) and receives an apply
// function taking a CollectionChange; the cleanup it returns runs on last
// detachment. itemFactory defaults to a plain State child per item.
func NewCollection(r *Reactor, start func(apply func(CollectionChange)) func(), initial []KeyedItem, itemFactory func(*Reactor, any) *node) *Collection {
	if itemFactory == nil {
		itemFactory = newFieldNode
	}
	c := &Collection{reactor: r, items: make(map[string]*node, len(initial)), self: nil}
	for _, it := range initial {
		c.items[it.Key] = itemFactory(r, it.Value)
		c.order = append(c.order, it.Key)
	}

	self := newNode(r, KindMemo)
	self.equals = func(a, b any) bool { return false }
	self.compute = func(prev any) (any, error) {
		out := make([]string, len(c.order))
		copy(out, c.order)
		return out, nil
	}
	self.flags = Dirty
	self.start = func(set func(any)) func() {
		return start(func(chg CollectionChange) { set(chg) })
	}
	self.onStartValue = func(v any) { c.applyChange(v.(CollectionChange), itemFactory) }
	c.self = self
	return c
}

func (c *Collection) applyChange(chg CollectionChange, itemFactory func(*Reactor, any) *node) {
	structural := len(chg.Add) > 0 || len(chg.Remove) > 0

	for _, it := range chg.Change {
		if n, ok := c.items[it.Key]; ok {
			StateSet(n, it.Value)
		}
	}
	if len(chg.Remove) > 0 {
		removeSet := make(map[string]struct{}, len(chg.Remove))
		for _, k := range chg.Remove {
			removeSet[k] = struct{}{}
		}
		kept := c.order[:0]
		for _, k := range c.order {
			if _, gone := removeSet[k]; gone {
				detachField(c.items[k])
				delete(c.items, k)
				continue
			}
			kept = append(kept, k)
		}
		c.order = kept
	}
	for _, it := range chg.Add {
		c.items[it.Key] = itemFactory(c.reactor, it.Value)
		c.order = append(c.order, it.Key)
	}

	if structural {
		clearSources(c.self)
		markDirty(c.self)
	}
	c.reactor.schedule()
}

// pullSelf brings a derived Collection's keys/reconcile memo up to date
// before Keys/ByKey index into c.order/c.items directly. An
// externally-driven Collection's self compute only copies the order,
// which applyChange already keeps current, so for it this read changes
// nothing in c.order/c.items.
func (c *Collection) pullSelf() {
	if c.self != nil && c.self.compute != nil {
		readValue(c.self)
	}
}

func (c *Collection) Keys() []string {
	c.pullSelf()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Collection) ByKey(k string) (*node, bool) {
	c.pullSelf()
	n, ok := c.items[k]
	return n, ok
}

// Value reads the keys vector as one dependency. A derived Collection
// uses shallow key-array equality (a reorder or a structural change is
// visible, a same-set same-order recompute is not); an externally-driven
// Collection treats every recompute as a change.
func (c *Collection) Value() []string {
	v, _ := readValue(c.self)
	return v.([]string)
}

// reconcile is shared by every derive* constructor below: it diffs
// newKeys against the collection's current item set, disposing items
// whose key dropped out and constructing (via makeItem) items for keys
// that are new, then adopts newKeys as the order.
func (c *Collection) reconcile(newKeys []string, makeItem func(key string) *node) {
	newSet := make(map[string]struct{}, len(newKeys))
	for _, k := range newKeys {
		newSet[k] = struct{}{}
	}
	for k, n := range c.items {
		if _, ok := newSet[k]; !ok {
			detachField(n)
			delete(c.items, k)
		}
	}
	for _, k := range newKeys {
		if _, ok := c.items[k]; !ok {
			c.items[k] = makeItem(k)
		}
	}
	c.order = newKeys
}

// deriveCollection builds the shared keys-tracking memo behind both
// (*List).Derive/DeriveTask and (*Collection).Derive/DeriveTask: srcSelf
// is the source's structural node (so upstream add/remove/sort
// invalidation reaches this derived view), keysOf reads the source's
// current key order, and makeItem constructs one per-item derived node
// for a newly-appeared key (a Memo for the sync case, a Task for async).
func deriveCollection(r *Reactor, srcSelf *node, keysOf func() []string, makeItem func(key string) *node) *Collection {
	c := &Collection{reactor: r, items: make(map[string]*node)}

	keysNode := newNode(r, KindMemo)
	keysNode.equals = func(a, b any) bool {
		ak, _ := a.([]string)
		bk, _ := b.([]string)
		return sameOrder(ak, bk)
	}
	keysNode.compute = func(prev any) (any, error) {
		readValue(srcSelf)
		newKeys := keysOf()
		c.reconcile(newKeys, makeItem)
		return newKeys, nil
	}
	keysNode.flags = Dirty
	c.self = keysNode
	return c
}

// Self exposes the structural/keys node backing this Collection, the
// same way List.Self does.
func (c *Collection) Self() *Node { return c.self }

// ItemValue is itemValue's exported form, used the same way.
func (c *Collection) ItemValue(key string) (any, error) { return c.itemValue(key) }

func (c *Collection) itemValue(key string) (any, error) {
	n, ok := c.items[key]
	if !ok {
		return nil, &Error{Kind: ErrUnsetValue, Message: "derived source item no longer present"}
	}
	return readValue(n)
}

// Derive chains a derived Collection off this one, so a change anywhere
// upstream ripples through every link in the chain.
func (c *Collection) Derive(cb func(item any) (any, error)) *Collection {
	return DeriveSync(c.reactor, c.self, c.Keys, c.itemValue, cb)
}

func (c *Collection) DeriveTask(cb func(ctx context.Context, item any) (any, error)) *Collection {
	return DeriveAsync(c.reactor, c.self, c.Keys, c.itemValue, cb)
}

// DeriveSync is the synchronous half of deriving a Collection: one Memo
// per source item, recomputed whenever that item's own value
// changes (itemValue links it as a source the normal way) or whenever it
// is re-created after a structural change upstream.
func DeriveSync(r *Reactor, srcSelf *node, keysOf func() []string, itemValue func(key string) (any, error), cb func(item any) (any, error)) *Collection {
	return deriveCollection(r, srcSelf, keysOf, func(key string) *node {
		n := newNode(r, KindMemo)
		n.compute = func(prev any) (any, error) {
			v, err := itemValue(key)
			if err != nil {
				return nil, err
			}
			return cb(v)
		}
		n.flags = Dirty
		return n
	})
}

// DeriveAsync is the async half: one Task per source item. Track re-reads
// itemValue synchronously (so a change to the source item aborts and
// restarts that item's Task, same as any other Track dependency), and
// the async body closes over the value Track captured.
func DeriveAsync(r *Reactor, srcSelf *node, keysOf func() []string, itemValue func(key string) (any, error), cb func(ctx context.Context, item any) (any, error)) *Collection {
	return deriveCollection(r, srcSelf, keysOf, func(key string) *node {
		var input any
		var inputErr error
		return NewTask(r, func(ctx context.Context, prev any) (any, error) {
			if inputErr != nil {
				return nil, inputErr
			}
			return cb(ctx, input)
		}, TaskOptions{
			Track: func() {
				input, inputErr = itemValue(key)
			},
		})
	})
}
