package memory

import (
	"testing"

	"github.com/adwski/webrtc-roulette/backend/model"
	"github.com/stretchr/testify/require"
)

func TestQueue_DequeuePair_FIFO(t *testing.T) {
	req := require.New(t)
	q := NewQueue()

	// Given three participants waiting in arrival order
	req.True(q.Enqueue("a"))
	req.True(q.Enqueue("b"))
	req.True(q.Enqueue("c"))

	// When a pair is taken
	first, second, err := q.DequeuePair()

	// Then the two longest waiting are returned in order
	req.NoError(err)
	req.Equal("a", first)
	req.Equal("b", second)
	req.Equal([]string{"c"}, q.IDs())

	_, _, err = q.DequeuePair()
	req.ErrorIs(err, model.ErrEmptyQueue)
	req.Equal(1, q.Len())
}

func TestQueue_Enqueue_NoDuplicates(t *testing.T) {
	req := require.New(t)
	q := NewQueue()

	req.True(q.Enqueue("a"))
	req.False(q.Enqueue("a"))
	req.False(q.PushFront("a"))
	req.Equal(1, q.Len())
}

func TestQueue_PushFront(t *testing.T) {
	req := require.New(t)
	q := NewQueue()

	q.Enqueue("a")
	q.Enqueue("b")
	req.True(q.PushFront("z"))

	req.Equal([]string{"z", "a", "b"}, q.IDs())
	first, second, err := q.DequeuePair()
	req.NoError(err)
	req.Equal("z", first)
	req.Equal("a", second)
}

func TestQueue_Remove(t *testing.T) {
	req := require.New(t)
	q := NewQueue()

	q.Enqueue("a")
	q.Enqueue("b")
	q.Enqueue("c")

	req.True(q.Remove("b"))
	req.Equal([]string{"a", "c"}, q.IDs())
	req.False(q.Contains("b"))

	// Removing an absent or already dequeued id is a no-op
	req.False(q.Remove("b"))
	_, _, err := q.DequeuePair()
	req.NoError(err)
	req.False(q.Remove("a"))
	req.Equal(0, q.Len())
}

func TestQueue_IDs_ReturnsCopy(t *testing.T) {
	req := require.New(t)
	q := NewQueue()
	q.Enqueue("a")

	ids := q.IDs()
	ids[0] = "mutated"

	req.True(q.Contains("a"))
}
