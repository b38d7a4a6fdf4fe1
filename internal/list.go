package internal

import (
	"context"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// KeyFn assigns a stable string key to a newly added item. Each List owns
// its own KeyFn instance (closures, not shared package state) so two
// Lists using KeyCounter don't interfere with each other's sequence.
type KeyFn func(item any) string

func KeyCounter() KeyFn {
	var n uint64
	return func(any) string {
		n++
		return strconv.FormatUint(n, 10)
	}
}

func KeyPrefixed(prefix string) KeyFn {
	var n uint64
	return func(any) string {
		n++
		return prefix + strconv.FormatUint(n, 10)
	}
}

func KeyFunc(fn func(item any) string) KeyFn { return fn }

func KeyUUID() KeyFn {
	return func(any) string { return uuid.NewString() }
}

type ListHooks struct {
	OnAdd    func(keys []string)
	OnChange func(keys []string)
	OnRemove func(keys []string)
	OnSort   func(order []string)
}

// List is the reactive keyed sequence: order lives in a plain []string
// of keys, separate from the map holding each item's child State, so a
// key's identity — and the signal behind it — survives
// sort/splice/reorder.
type List struct {
	reactor *Reactor
	items   map[string]*node
	order   []string
	keyFn   KeyFn
	self    *node
	hooks   ListHooks
}

func NewList(r *Reactor, initial []any, keyFn KeyFn, hooks ListHooks) *List {
	if keyFn == nil {
		keyFn = KeyCounter()
	}
	l := &List{reactor: r, items: make(map[string]*node, len(initial)), keyFn: keyFn, hooks: hooks}
	for _, v := range initial {
		k := keyFn(v)
		l.items[k] = newFieldNode(r, v)
		l.order = append(l.order, k)
	}

	self := newNode(r, KindMemo)
	self.equals = func(a, b any) bool { return false }
	self.compute = func(prev any) (any, error) { return l.buildValue(), nil }
	self.flags = Dirty
	l.self = self
	return l
}

// buildValue materializes the sequence's values in order, skipping any
// item whose current value is UNSET: a tombstoned item stays in the key
// order (so ByKey still finds it) but drops out of the aggregate view
// until an explicit Remove.
func (l *List) buildValue() []any {
	out := make([]any, 0, len(l.order))
	for _, k := range l.order {
		v, _ := readValue(l.items[k])
		if IsUnset(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (l *List) Len() int { return len(l.order) }

func (l *List) Keys() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

func (l *List) At(i int) (*node, bool) {
	if i < 0 || i >= len(l.order) {
		return nil, false
	}
	return l.items[l.order[i]], true
}

func (l *List) ByKey(k string) (*node, bool) {
	n, ok := l.items[k]
	return n, ok
}

// Value reads the whole sequence as one dependency, the same structural
// fast-path Store.Value uses.
func (l *List) Value() []any {
	v, _ := readValue(l.self)
	return v.([]any)
}

func (l *List) Add(item any) (string, error) {
	k := l.keyFn(item)
	if _, exists := l.items[k]; exists {
		return "", &Error{Kind: ErrDuplicateKey, Message: "key " + k + " already present in list"}
	}
	l.items[k] = newFieldNode(l.reactor, item)
	l.order = append(l.order, k)
	l.invalidateStructure()
	l.notifyAdd([]string{k})
	return k, nil
}

// Remove accepts either an int index or a string key.
func (l *List) Remove(indexOrKey any) bool {
	var key string
	switch v := indexOrKey.(type) {
	case string:
		key = v
		if _, ok := l.items[key]; !ok {
			return false
		}
	case int:
		if v < 0 || v >= len(l.order) {
			return false
		}
		key = l.order[v]
	default:
		return false
	}

	idx := -1
	for i, k := range l.order {
		if k == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	detachField(l.items[key])
	delete(l.items, key)
	l.order = append(l.order[:idx], l.order[idx+1:]...)
	l.invalidateStructure()
	l.notifyRemove([]string{key})
	return true
}

// Splice mirrors slice-language array splicing: start clamped/negative,
// deleteCount clamped to the remaining length. It returns the removed
// items' current values.
func (l *List) Splice(start, deleteCount int, items ...any) ([]any, error) {
	n := len(l.order)
	if start < 0 {
		start += n
	}
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > n {
		deleteCount = n - start
	}

	removedKeys := append([]string(nil), l.order[start:start+deleteCount]...)
	removedSet := make(map[string]struct{}, len(removedKeys))
	for _, k := range removedKeys {
		removedSet[k] = struct{}{}
	}

	addedKeys := make([]string, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, v := range items {
		k := l.keyFn(v)
		if _, dup := seen[k]; dup {
			return nil, &Error{Kind: ErrDuplicateKey, Message: "key " + k + " assigned to more than one inserted item"}
		}
		if _, exists := l.items[k]; exists {
			if _, removing := removedSet[k]; !removing {
				return nil, &Error{Kind: ErrDuplicateKey, Message: "key " + k + " already present in list"}
			}
		}
		seen[k] = struct{}{}
		addedKeys[i] = k
	}

	removed := make([]any, len(removedKeys))
	for i, k := range removedKeys {
		removed[i], _ = readValue(l.items[k])
		detachField(l.items[k])
		delete(l.items, k)
	}
	for i, v := range items {
		l.items[addedKeys[i]] = newFieldNode(l.reactor, v)
	}

	tail := append([]string(nil), l.order[start+deleteCount:]...)
	l.order = append(l.order[:start], append(addedKeys, tail...)...)

	l.invalidateStructure()
	if len(removedKeys) > 0 {
		l.notifyRemove(removedKeys)
	}
	if len(addedKeys) > 0 {
		l.notifyAdd(addedKeys)
	}
	return removed, nil
}

// Sort reorders the keys vector only — no signal is created, disposed,
// or re-keyed, so downstream readers that track by key never see a
// spurious add/remove, only a reorder.
func (l *List) Sort(cmp func(a, b any) int) {
	sort.SliceStable(l.order, func(i, j int) bool {
		a, _ := readValue(l.items[l.order[i]])
		b, _ := readValue(l.items[l.order[j]])
		return cmp(a, b) < 0
	})
	l.invalidateStructure()
	if l.hooks.OnSort != nil {
		l.hooks.OnSort(l.Keys())
	}
	l.reactor.schedule()
}

// Set diffs newItems (keyed via the list's own KeyFn) against the
// current sequence and applies the result as add/change/remove, the
// same machinery Store.Set uses.
func (l *List) Set(newItems []any) error {
	oldVals := make(map[string]any, len(l.order))
	for _, k := range l.order {
		oldVals[k] = l.items[k].value
	}

	newKeys := make([]string, len(newItems))
	newVals := make(map[string]any, len(newItems))
	seen := make(map[string]struct{}, len(newItems))
	for i, v := range newItems {
		k := l.keyFn(v)
		if _, dup := seen[k]; dup {
			return &Error{Kind: ErrDuplicateKey, Message: "key " + k + " assigned to more than one item"}
		}
		seen[k] = struct{}{}
		newKeys[i] = k
		newVals[k] = v
	}

	d := DiffKeyed(l.order, oldVals, newKeys, newVals, StructEquals)
	reordered := !sameOrder(l.order, newKeys)
	if !d.Changed && !reordered {
		return nil
	}

	for _, k := range d.Change {
		StateSet(l.items[k], newVals[k])
	}
	for _, k := range d.Add {
		l.items[k] = newFieldNode(l.reactor, newVals[k])
	}
	for _, k := range d.Remove {
		detachField(l.items[k])
		delete(l.items, k)
	}
	l.order = newKeys

	// A pure value update (same keys, same order) already reached l.self
	// through StateSet's normal propagation above — l.self was linked as
	// a sink of every item the last time it read them, so no relink is
	// needed. Add/Remove or a reorder changes what l.self's next compute
	// must read, so those still force a full relink.
	if len(d.Add) > 0 || len(d.Remove) > 0 || reordered {
		l.invalidateStructure()
	} else {
		markDirty(l.self)
	}
	if len(d.Add) > 0 {
		l.notifyAdd(d.Add)
	}
	if len(d.Change) > 0 && l.hooks.OnChange != nil {
		l.hooks.OnChange(d.Change)
	}
	if len(d.Remove) > 0 {
		l.notifyRemove(d.Remove)
	}
	l.reactor.schedule()
	return nil
}

func (l *List) Update(fn func([]any) []any) error {
	return l.Set(fn(l.buildValue()))
}

// Self exposes the structural node backing this List, so the root
// facade's Derive/DeriveTask can hand it to DeriveSync/DeriveAsync as the
// upstream dependency without reaching into an unexported field.
func (l *List) Self() *Node { return l.self }

// ItemValue is itemValue's exported form, used the same way.
func (l *List) ItemValue(key string) (any, error) { return l.itemValue(key) }

func (l *List) itemValue(key string) (any, error) {
	n, ok := l.items[key]
	if !ok {
		return nil, &Error{Kind: ErrUnsetValue, Message: "derived source item no longer present"}
	}
	return readValue(n)
}

// Derive returns a read-only Collection with one Memo per item,
// recomputed whenever the source item's value or the list's structure
// changes.
func (l *List) Derive(cb func(item any) (any, error)) *Collection {
	return DeriveSync(l.reactor, l.self, l.Keys, l.itemValue, cb)
}

// DeriveTask is the async analogue of Derive: one Task per item.
func (l *List) DeriveTask(cb func(ctx context.Context, item any) (any, error)) *Collection {
	return DeriveAsync(l.reactor, l.self, l.Keys, l.itemValue, cb)
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (l *List) invalidateStructure() {
	clearSources(l.self)
	markDirty(l.self)
}

func (l *List) notifyAdd(keys []string) {
	l.reactor.schedule()
	if l.hooks.OnAdd != nil {
		l.hooks.OnAdd(keys)
	}
}

func (l *List) notifyRemove(keys []string) {
	l.reactor.schedule()
	if l.hooks.OnRemove != nil {
		l.hooks.OnRemove(keys)
	}
}
