package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		Reset()
		log := []string{}

		count := NewState(0)
		log = append(log, fmt.Sprintf("%d", count.Get()))

		NewEffect(func() func() {
			log = append(log, fmt.Sprintf("changed %d", count.Get()))
			return func() { log = append(log, "cleanup") }
		})

		count.Set(10)
		log = append(log, fmt.Sprintf("%d", count.Get()))
		count.Set(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		Reset()
		log := []string{}

		count := NewState(0)
		double := NewState(0)

		NewEffect(func() func() {
			double.Set(count.Get() * 2)
			return nil
		})

		NewEffect(func() func() {
			log = append(log, fmt.Sprintf("changed %d", double.Get()))
			return func() { log = append(log, "cleanup") }
		})

		count.Set(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		Reset()
		log := []string{}

		count := NewState(0)

		NewEffect(func() func() {
			count.Get()
			log = append(log, "running")

			NewEffect(func() func() {
				log = append(log, "running nested")
				return func() { log = append(log, "cleanup nested") }
			})

			return func() { log = append(log, "cleanup") }
		})

		count.Set(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("diamond dependency", func(t *testing.T) {
		Reset()
		log := []string{}

		count := NewState(0)
		double := NewMemo(func(int) int { return count.Get() * 2 })
		quad := NewMemo(func(int) int { return count.Get() * 4 })

		NewEffect(func() func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Get(), quad.Get()))
			return func() { log = append(log, fmt.Sprintf("cleanup %d %d", double.Get(), quad.Get())) }
		})

		count.Set(10)

		assert.Equal(t, []string{
			"running 0 0",
			"cleanup 20 40",
			"running 20 40",
		}, log)
	})

	t.Run("deps change between runs", func(t *testing.T) {
		Reset()
		log := []string{}

		count := NewState(0)

		initialized := false
		NewEffect(func() func() {
			log = append(log, "running")
			if !initialized {
				count.Get()
			}
			initialized = true
			return nil
		})

		count.Set(1)
		count.Set(2) // no longer a source, should not trigger another run

		assert.Equal(t, []string{
			"running",
			"running",
		}, log)
	})

	t.Run("dispose stops future runs", func(t *testing.T) {
		Reset()
		runs := 0

		count := NewState(0)
		eff := NewEffect(func() func() {
			count.Get()
			runs++
			return nil
		})

		eff.Dispose()
		count.Set(1)
		count.Set(2)

		assert.Equal(t, 1, runs)
	})
}
