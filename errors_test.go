package reactor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("unset sensor read reports ErrUnsetValue", func(t *testing.T) {
		Reset()
		sensor := NewSensor(func(set func(int)) func() { return func() {} })

		_, err := sensor.Get()
		var reactorErr *Error
		assert.True(t, errors.As(err, &reactorErr))
		assert.Equal(t, ErrUnsetValue, reactorErr.Kind)
	})

	t.Run("a memo that reads itself reports ErrCircularDependency", func(t *testing.T) {
		Reset()
		var self *Memo[int]
		self = NewMemoE(func(prev int) (int, error) {
			if prev == 0 {
				return self.GetE()
			}
			return prev, nil
		})

		_, err := self.GetE()
		var reactorErr *Error
		assert.True(t, errors.As(err, &reactorErr))
		assert.Equal(t, ErrCircularDependency, reactorErr.Kind)
	})
}
