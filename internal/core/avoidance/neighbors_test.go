package avoidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanNeighborsOrderAndRange(t *testing.T) {
	a := walker(0, 0, 0, 10)
	a.NeighborDistance = 3
	s := snapshotOf(t, walker(5, 0, 0, 0), a, walker(1, 1, 0, 0), walker(-2, 0, 0, 0))

	var seen []Neighbor
	ScanNeighbors(s, 1, func(n Neighbor) { seen = append(seen, n) })

	require.Len(t, seen, 3)
	assert.Equal(t, []int{0, 2, 3}, []int{seen[0].Index, seen[1].Index, seen[2].Index})
	assert.False(t, seen[0].InRange)
	assert.True(t, seen[1].InRange)
	assert.True(t, seen[2].InRange)
	assert.InDelta(t, 5.0, seen[0].Distance, 1e-12)
	assert.Equal(t, 5.0, seen[0].Offset[0])
	assert.True(t, HasNeighbor(s, 1))
}

func TestScanNeighborsCoincident(t *testing.T) {
	s := snapshotOf(t, walker(1, 1, 0, 0), walker(1, 1, 5, 5))

	var seen []Neighbor
	ScanNeighbors(s, 0, func(n Neighbor) { seen = append(seen, n) })

	require.Len(t, seen, 1)
	assert.Zero(t, seen[0].Distance)
	assert.True(t, seen[0].InRange)
}

func TestHasNeighborBlind(t *testing.T) {
	a := walker(0, 0, 0, 10)
	a.NeighborDistance = 0
	s := snapshotOf(t, a, walker(0.1, 0, 0, 0))

	assert.False(t, HasNeighbor(s, 0))
	assert.True(t, HasNeighbor(s, 1))
}
