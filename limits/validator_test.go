package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_CapsMessages(t *testing.T) {
	v := NewValidator(Limits{MaxMessages: 2})

	v.Errorf("a", "first")
	v.Errorf("b", "second")
	v.Errorf("c", "third")

	require.Len(t, v.Messages(), 2)
	assert.Equal(t, 1, v.Dropped())
	assert.True(t, v.HasErrors())
}

func TestValidator_Unlimited(t *testing.T) {
	v := NewValidator(Limits{MaxMessages: 0})

	for i := 0; i < 500; i++ {
		v.Warnf("x", "warning %d", i)
	}

	assert.Len(t, v.Messages(), 500)
	assert.Equal(t, 0, v.Dropped())
	assert.False(t, v.HasErrors())
}

func TestValidator_RecursionDepth(t *testing.T) {
	v := NewValidator(Default())

	for i := 0; i < MaxCompositeDepth; i++ {
		require.True(t, v.EnterRecursion(MaxCompositeDepth))
	}

	assert.False(t, v.EnterRecursion(MaxCompositeDepth))

	for i := 0; i < MaxCompositeDepth+1; i++ {
		v.ExitRecursion()
	}
}

func TestLimits_CheckIndexBytes(t *testing.T) {
	l := Limits{MaxIndexBytes: 100}
	assert.False(t, l.CheckIndexBytes(100))
	assert.True(t, l.CheckIndexBytes(101))

	unlimited := Limits{MaxIndexBytes: 0}
	assert.False(t, unlimited.CheckIndexBytes(1<<40))
}
