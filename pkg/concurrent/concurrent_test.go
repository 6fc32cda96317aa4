package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachChunkCoversRange(t *testing.T) {
	for _, workers := range []int{1, 4} {
		seen := make([]int32, 103)
		err := ForEachChunk(context.Background(), len(seen), 10, workers, func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
			return nil
		})
		require.NoError(t, err)
		for i, c := range seen {
			assert.Equal(t, int32(1), c, "index %d with %d workers", i, workers)
		}
	}
}

func TestForEachChunkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	err := ForEachChunk(ctx, 100, 10, 4, func(lo, hi int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestForEachChunkPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEachChunk(context.Background(), 50, 5, 3, func(lo, hi int) error {
		if lo == 20 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallelMapPreservesOrder(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7}
	out, err := ParallelMap(context.Background(), in, 3, func(v int) int { return v * v })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49}, out)
}

func TestWorkersDefault(t *testing.T) {
	assert.GreaterOrEqual(t, Workers(0), 1)
	assert.Equal(t, 3, Workers(3))
}
