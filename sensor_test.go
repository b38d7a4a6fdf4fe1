package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSensor(t *testing.T) {
	t.Run("lazy start and stop", func(t *testing.T) {
		Reset()
		starts, stops := 0, 0

		var push func(int)
		sensor := NewSensor(func(set func(int)) func() {
			starts++
			push = set
			return func() { stops++ }
		})

		assert.Equal(t, 0, starts, "start must not run before any sink attaches")

		scope := NewScope(func() {
			NewEffect(func() func() {
				sensor.Get()
				return nil
			})
		})

		assert.Equal(t, 1, starts)
		assert.Equal(t, 0, stops)

		push(5)
		v, err := sensor.Get()
		assert.NoError(t, err)
		assert.Equal(t, 5, v)

		scope.Dispose()
		assert.Equal(t, 1, stops, "stop must run once the last sink detaches")
	})

	t.Run("restarts on resubscribe after the last sink detaches", func(t *testing.T) {
		Reset()
		starts, stops := 0, 0

		var push func(int)
		sensor := NewSensor(func(set func(int)) func() {
			starts++
			push = set
			return func() { stops++ }
		})

		scope1 := NewScope(func() {
			NewEffect(func() func() {
				sensor.Get()
				return nil
			})
		})
		assert.Equal(t, 1, starts)
		push(1)
		v, _ := sensor.Get()
		assert.Equal(t, 1, v)

		scope1.Dispose()
		assert.Equal(t, 1, stops, "first attach cycle's stop must run")

		scope2 := NewScope(func() {
			NewEffect(func() func() {
				sensor.Get()
				return nil
			})
		})
		assert.Equal(t, 2, starts, "start must fire again on the new attach cycle")
		push(2)
		v, err := sensor.Get()
		assert.NoError(t, err)
		assert.Equal(t, 2, v)

		scope2.Dispose()
		assert.Equal(t, 2, stops, "second attach cycle's stop must run too")
	})

	t.Run("unstarted read is unset", func(t *testing.T) {
		Reset()
		sensor := NewSensor(func(set func(int)) func() { return func() {} })

		_, err := sensor.Get()
		assert.Error(t, err)
	})

	t.Run("initial value readable before start", func(t *testing.T) {
		Reset()
		sensor := NewSensor(func(set func(int)) func() { return func() {} }, SensorWithInitial(42))

		v, err := sensor.Get()
		assert.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("reflects pushed values through an effect", func(t *testing.T) {
		Reset()
		var push func(int)
		sensor := NewSensor(func(set func(int)) func() {
			push = set
			return func() {}
		})

		seen := []int{}
		NewEffect(func() func() {
			v, err := sensor.Get()
			if err == nil {
				seen = append(seen, v)
			} else {
				seen = append(seen, -1)
			}
			return nil
		})

		push(1)
		push(2)
		push(2) // same value, default equals suppresses the re-run

		assert.Equal(t, []int{-1, 1, 2}, seen)
	})

	t.Run("SensorAlwaysDirty propagates every pushed value including repeats", func(t *testing.T) {
		Reset()
		var push func(int)
		sensor := NewSensor(func(set func(int)) func() {
			push = set
			return func() {}
		}, SensorAlwaysDirty[int]())

		runs := 0
		NewEffect(func() func() {
			sensor.Get()
			runs++
			return nil
		})

		push(1)
		push(1)
		push(1)

		assert.Equal(t, 4, runs) // initial run plus three identical pushes
	})

	t.Run("SensorWithEquals overrides the default comparison", func(t *testing.T) {
		Reset()
		type reading struct{ celsius float64 }
		var push func(reading)
		sensor := NewSensor(func(set func(reading)) func() {
			push = set
			return func() {}
		}, SensorWithEquals(func(a, b reading) bool {
			return int(a.celsius) == int(b.celsius) // equal within a whole degree
		}))

		runs := 0
		NewEffect(func() func() {
			sensor.Get()
			runs++
			return nil
		})

		push(reading{celsius: 20.1})
		push(reading{celsius: 20.9}) // same whole degree -> suppressed
		push(reading{celsius: 21.0}) // new whole degree -> propagates

		assert.Equal(t, 3, runs)
	})
}
