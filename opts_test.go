package beacon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		b := New[int](nil)
		assert.Empty(t, b.Name())
		assert.NotEmpty(t, b.ID())
		assert.False(t, b.strict)
		assert.False(t, b.keepOrder)
	})

	t.Run("WithName", func(t *testing.T) {
		b := New[int](nil, WithName("lifecycle"))
		assert.Equal(t, "lifecycle", b.Name())
	})

	t.Run("Strict reports violations as errors", func(t *testing.T) {
		b := New[string](nil, Strict(true))
		err := b.Unhook(Handle{})
		require.ErrorIs(t, err, ErrInvalidHandle)
		assert.Contains(t, err.Error(), b.ID())
	})

	t.Run("strict errors carry the name when set", func(t *testing.T) {
		b := New[string](nil, Strict(true), WithName("lifecycle"))
		err := b.Unhook(Handle{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broadcaster lifecycle")
	})

	t.Run("KeepOrder", func(t *testing.T) {
		b := New[int](nil, KeepOrder(true))
		assert.True(t, b.keepOrder)
	})
}
