package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("field get/set", func(t *testing.T) {
		Reset()
		s := NewStore(map[string]int{"a": 1, "b": 2}, StoreHooks{})

		a, ok := s.Field("a")
		assert.True(t, ok)
		assert.Equal(t, 1, a.Get())

		a.Set(10)
		assert.Equal(t, 10, a.Get())

		_, ok = s.Field("missing")
		assert.False(t, ok)
	})

	t.Run("Value reads the whole record as one dependency", func(t *testing.T) {
		Reset()
		s := NewStore(map[string]int{"a": 1, "b": 2}, StoreHooks{})

		runs := 0
		var seen map[string]int
		NewEffect(func() func() {
			seen = s.Value()
			runs++
			return nil
		})

		assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)

		a, _ := s.Field("a")
		a.Set(5)
		assert.Equal(t, 2, runs, "a field write must invalidate the whole-record dependency")
		assert.Equal(t, 5, seen["a"])
	})

	t.Run("Set diffs fields and fires hooks", func(t *testing.T) {
		Reset()
		var added, changed, removed []string

		s := NewStore(map[string]int{"a": 1, "b": 2}, StoreHooks{
			OnAdd:    func(keys []string) { added = append(added, keys...) },
			OnChange: func(keys []string) { changed = append(changed, keys...) },
			OnRemove: func(keys []string) { removed = append(removed, keys...) },
		})

		s.Set(map[string]int{"a": 1, "b": 99, "c": 3})

		assert.ElementsMatch(t, []string{"c"}, added)
		assert.ElementsMatch(t, []string{"b"}, changed)
		assert.ElementsMatch(t, []string{}, removed)

		b, _ := s.Field("b")
		assert.Equal(t, 99, b.Get())
		c, ok := s.Field("c")
		assert.True(t, ok)
		assert.Equal(t, 3, c.Get())

		_, ok = s.Field("a")
		assert.True(t, ok, "a was neither added/changed/removed, still present")
	})

	t.Run("removing a field detaches it from the whole-record view", func(t *testing.T) {
		Reset()
		s := NewStore(map[string]int{"a": 1, "b": 2}, StoreHooks{})
		s.Value()

		s.Set(map[string]int{"a": 1})

		_, ok := s.Field("b")
		assert.False(t, ok)
		assert.Equal(t, map[string]int{"a": 1}, s.Value())
	})
}
