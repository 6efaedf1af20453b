package notice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_PostAndDrain(t *testing.T) {
	b := NewBoard()
	b.Post(1, "first")
	b.Post(1, "second")
	b.Post(2, "other user")

	got := b.Drain(1)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "second", got[1].Message)

	assert.Empty(t, b.Drain(1))
	assert.Len(t, b.Drain(2), 1)
}

func TestBoard_DropsOldestOverLimit(t *testing.T) {
	b := NewBoard()
	b.limit = 3
	for i := 0; i < 5; i++ {
		b.Post(1, fmt.Sprintf("n%d", i))
	}

	got := b.Drain(1)
	require.Len(t, got, 3)
	assert.Equal(t, "n2", got[0].Message)
	assert.Equal(t, "n4", got[2].Message)
}
