package reactor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleState() {
	Reset()
	count := NewState(0)
	fmt.Println(count.Get())

	count.Set(10)
	fmt.Println(count.Get())

	// Output:
	// 0
	// 10
}

func ExampleState_unset() {
	Reset()
	type box struct{ n int }
	s := NewState(box{n: 1})

	NewEffect(func() func() {
		v, err := s.GetE()
		fmt.Println(v, err)
		return nil
	})

	s.Set(Unset[box]())

	// Output:
	// {1} <nil>
	// {0} <nil>
}

func TestStateOptions(t *testing.T) {
	t.Run("WithGuard rejects an invalid Set and leaves the value unchanged", func(t *testing.T) {
		Reset()
		negative := errors.New("must be non-negative")
		count := NewState(5, WithGuard(func(v int) error {
			if v < 0 {
				return negative
			}
			return nil
		}))

		err := count.Set(-1)
		assert.ErrorIs(t, err, negative)
		assert.Equal(t, 5, count.Get())

		assert.NoError(t, count.Set(9))
		assert.Equal(t, 9, count.Get())
	})

	t.Run("WithGuard rejects an invalid initial value at construction", func(t *testing.T) {
		Reset()
		assert.Panics(t, func() {
			NewState(-1, WithGuard(func(v int) error {
				if v < 0 {
					return errors.New("must be non-negative")
				}
				return nil
			}))
		})
	})

	t.Run("WithEquals overrides the default comparison", func(t *testing.T) {
		Reset()
		type point struct{ x, y int }
		runs := 0
		p := NewState(point{1, 1}, WithEquals(func(a, b point) bool { return a.x == b.x }))
		NewEffect(func() func() {
			p.Get()
			runs++
			return nil
		})

		p.Set(point{1, 9}) // x unchanged -> equals says no change
		assert.Equal(t, 1, runs)

		p.Set(point{2, 9}) // x changed -> propagates
		assert.Equal(t, 2, runs)
	})
}
