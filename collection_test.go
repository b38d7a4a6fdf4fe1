package reactor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollection(t *testing.T) {
	t.Run("externally-driven collection is lazy and applies changes", func(t *testing.T) {
		Reset()
		starts := 0
		var apply func(CollectionChange[int])

		c := NewCollection(func(a func(CollectionChange[int])) func() {
			starts++
			apply = a
			return func() {}
		}, map[string]int{"a": 1})

		assert.Equal(t, 0, starts)

		NewEffect(func() func() {
			c.Value()
			return nil
		})
		assert.Equal(t, 1, starts)

		apply(CollectionChange[int]{
			Add:    []KeyedItem[int]{{Key: "b", Value: 2}},
			Change: []KeyedItem[int]{{Key: "a", Value: 10}},
		})

		assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
		item, ok := c.ByKey("a")
		assert.True(t, ok)
		assert.Equal(t, 10, item.Get())
		itemB, ok := c.ByKey("b")
		assert.True(t, ok)
		assert.Equal(t, 2, itemB.Get())

		apply(CollectionChange[int]{Remove: []string{"a"}})
		_, ok = c.ByKey("a")
		assert.False(t, ok)
	})

	t.Run("Derive builds one Memo per item and tracks source changes", func(t *testing.T) {
		Reset()
		l := NewList([]int{1, 2, 3}, nil, ListHooks{})
		doubled := Derive(l, func(v int) (int, error) { return v * 2, nil })

		keys := l.Keys()
		assert.ElementsMatch(t, keys, doubled.Keys())

		item, ok := doubled.ByKey(keys[0])
		assert.True(t, ok)
		assert.Equal(t, 2, item.Get())

		src, _ := l.ByKey(keys[0])
		src.Set(100)
		assert.Equal(t, 200, item.Get())
	})

	t.Run("derived collection follows structural changes upstream", func(t *testing.T) {
		Reset()
		l := NewList([]int{1, 2}, nil, ListHooks{})
		doubled := Derive(l, func(v int) (int, error) { return v * 2, nil })

		assert.ElementsMatch(t, l.Keys(), doubled.Keys())

		key, err := l.Add(5)
		assert.NoError(t, err)
		assert.ElementsMatch(t, l.Keys(), doubled.Keys())

		item, ok := doubled.ByKey(key)
		assert.True(t, ok)
		assert.Equal(t, 10, item.Get())

		l.Remove(key)
		_, ok = doubled.ByKey(key)
		assert.False(t, ok)
	})

	t.Run("derived collections chain", func(t *testing.T) {
		Reset()
		l := NewList([]int{1, 2, 3}, nil, ListHooks{})
		doubled := Derive(l, func(v int) (int, error) { return v * 2, nil })
		labeled := DeriveCollection(doubled, func(v int) (string, error) {
			if v%4 == 0 {
				return "mult-of-4", nil
			}
			return "other", nil
		})

		keys := l.Keys()
		item, ok := labeled.ByKey(keys[1]) // source value 2 -> doubled 4 -> "mult-of-4"
		assert.True(t, ok)
		assert.Equal(t, "mult-of-4", item.Get())
	})

	t.Run("writing to a derived item is rejected", func(t *testing.T) {
		Reset()
		l := NewList([]int{1, 2}, nil, ListHooks{})
		doubled := Derive(l, func(v int) (int, error) { return v * 2, nil })

		keys := l.Keys()
		item, ok := doubled.ByKey(keys[0])
		assert.True(t, ok)

		err := item.Set(99)
		var reactorErr *Error
		assert.True(t, errors.As(err, &reactorErr))
		assert.Equal(t, ErrReadonlySignal, reactorErr.Kind)
		assert.Equal(t, 2, item.Get(), "rejected write must not corrupt the derived value")
	})
}
