package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemQueue(t *testing.T) {
	ctx := context.Background()
	q := New()
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Push(ctx, &Task{Index: i, Seed: int64(i * 10)}))
	}
	pending, running, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, pending)
	assert.Equal(t, 0, running)

	first, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Index)
	second, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", second.ID())

	require.NoError(t, q.Complete(ctx, first.ID()))
	require.NoError(t, q.Drop(ctx, second.ID()))
	// Dropping a completed task is a no-op.
	require.NoError(t, q.Drop(ctx, first.ID()))
	pending, running, err = q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)
	assert.Equal(t, 0, running)

	var indexes []int
	for {
		task, err := q.Pull(ctx)
		require.NoError(t, err)
		if task == nil {
			break
		}
		indexes = append(indexes, task.Index)
		require.NoError(t, q.Complete(ctx, task.ID()))
	}
	assert.Equal(t, []int{2, 1}, indexes)
}

func TestMemQueueCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := New()
	assert.ErrorIs(t, q.Push(ctx, &Task{}), context.Canceled)
	_, err := q.Pull(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
