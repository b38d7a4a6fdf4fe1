package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleBatch() {
	Reset()
	a := NewState(1)
	b := NewState(2)

	NewEffect(func() func() {
		fmt.Println("sum:", a.Get()+b.Get())
		return nil
	})

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	// Output:
	// sum: 3
	// sum: 30
}

func TestUntrack(t *testing.T) {
	Reset()
	tracked := NewState(0)
	untracked := NewState(0)
	runs := 0

	NewEffect(func() func() {
		tracked.Get()
		Untrack(func() int { return untracked.Get() })
		runs++
		return nil
	})

	untracked.Set(1)
	assert.Equal(t, 1, runs, "a write to an untracked read must not re-run the effect")

	tracked.Set(1)
	assert.Equal(t, 2, runs)
}
