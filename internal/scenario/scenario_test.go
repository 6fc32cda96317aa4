package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/crowd"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

func TestCrossingLayout(t *testing.T) {
	store := crowd.NewStore()
	cfg := DefaultConfig()
	cfg.Count = 7

	ids, err := Populate(store, cfg)
	require.NoError(t, err)
	require.Len(t, ids, 14)

	agents := store.Agents()
	first, sixth := agents[0], agents[5]
	assert.Equal(t, "south", first.Group)
	assert.Equal(t, physics.Planar(0, -20), first.Position)
	assert.Equal(t, physics.Planar(2, 20), first.Goal)
	// second row, first column
	assert.Equal(t, physics.Planar(0, -18), sixth.Position)
	assert.Equal(t, 3.0, first.MaxSpeed)

	north := agents[7]
	assert.Equal(t, "north", north.Group)
	assert.Equal(t, physics.Planar(0, 20), north.Position)
	assert.Equal(t, physics.Planar(2, -20), north.Goal)
}

func TestSwapLayout(t *testing.T) {
	store := crowd.NewStore()
	cfg := DefaultConfig()
	cfg.Kind = KindSwap
	cfg.Distance = 10

	ids, err := Populate(store, cfg)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	agents := store.Agents()
	assert.Equal(t, agents[0].Goal, agents[1].Position)
	assert.Equal(t, agents[1].Goal, agents[0].Position)
}

func TestCircleLayout(t *testing.T) {
	store := crowd.NewStore()
	cfg := DefaultConfig()
	cfg.Kind = KindCircle
	cfg.Count = 12

	_, err := Populate(store, cfg)
	require.NoError(t, err)

	for _, a := range store.Agents() {
		assert.InDelta(t, 20.0, a.Position.Len(), 1e-9)
		assert.InDelta(t, 40.0, physics.Distance(a.Position, a.Goal), 1e-9)
	}
}

func TestPopulateErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kind = "stampede"
	_, err := Populate(crowd.NewStore(), cfg)
	assert.ErrorIs(t, err, ErrUnknownKind)

	cfg = DefaultConfig()
	cfg.Speed = 0
	store := crowd.NewStore()
	_, err = Populate(store, cfg)
	assert.ErrorIs(t, err, avoidance.ErrInvalidSpeed)
	assert.Zero(t, store.Len())
}
