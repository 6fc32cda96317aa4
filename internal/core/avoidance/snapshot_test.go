package avoidance

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

func TestNewSnapshotValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AgentState)
		want   error
	}{
		{"zero speed", func(a *AgentState) { a.MaxSpeed = 0 }, ErrInvalidSpeed},
		{"infinite speed", func(a *AgentState) { a.MaxSpeed = math.Inf(1) }, ErrInvalidSpeed},
		{"negative radius", func(a *AgentState) { a.Radius = -1 }, ErrInvalidRadius},
		{"NaN range", func(a *AgentState) { a.NeighborDistance = math.NaN() }, ErrInvalidRange},
		{"negative weight", func(a *AgentState) { a.Weight = -0.5 }, ErrInvalidWeight},
		{"NaN position", func(a *AgentState) { a.Position[0] = math.NaN() }, ErrNonFinite},
		{"infinite goal", func(a *AgentState) { a.Goal[2] = math.Inf(-1) }, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := walker(0, 0, 1, 1)
			tt.mutate(&a)
			_, err := NewSnapshot([]string{"ok", "bad"}, []AgentState{walker(5, 5, 0, 0), a})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "agent 1")
		})
	}
}

func TestNewSnapshotRejectsMismatchAndEmptyID(t *testing.T) {
	_, err := NewSnapshot([]string{"a"}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewSnapshot([]string{""}, []AgentState{walker(0, 0, 1, 1)})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestNewSnapshotZeroWeightAndRangeAreValid(t *testing.T) {
	a := walker(0, 0, 1, 1)
	a.Weight = 0
	a.NeighborDistance = 0
	_, err := NewSnapshot([]string{"a"}, []AgentState{a})
	assert.NoError(t, err)
}

func TestSnapshotCopiesInput(t *testing.T) {
	ids := []string{"a", "b"}
	agents := []AgentState{walker(0, 0, 1, 1), walker(2, 2, 0, 0)}
	s, err := NewSnapshot(ids, agents)
	require.NoError(t, err)

	ids[0] = "changed"
	agents[0].Position = physics.Planar(9, 9)

	assert.Equal(t, "a", s.ID(0))
	assert.Equal(t, physics.Planar(0, 0), s.Agent(0).Position)

	out := s.IDs()
	out[1] = "changed"
	assert.Equal(t, "b", s.ID(1))
}

func TestFromArrays(t *testing.T) {
	pos := []mgl64.Vec3{physics.Planar(0, 0), physics.Planar(3, 0)}
	vel := []mgl64.Vec3{physics.Planar(1, 0), physics.Planar(0, 0)}
	goals := []mgl64.Vec3{physics.Planar(10, 0), physics.Planar(-10, 0)}

	s, err := FromArrays([]string{"a", "b"}, pos, vel, goals,
		[]float64{2, 3}, []float64{0.5, 0.4}, []float64{5, 5}, []float64{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	b := s.Agent(1)
	assert.Equal(t, physics.Planar(3, 0), b.Position)
	assert.Equal(t, 3.0, b.MaxSpeed)
	assert.Equal(t, 0.4, b.Radius)
	assert.Equal(t, 2.0, b.Weight)
	assert.Equal(t, physics.Planar(1, 0), s.Agent(0).Velocity)

	_, err = FromArrays([]string{"a", "b"}, pos, vel, goals,
		[]float64{2, 3}, []float64{0.5}, []float64{5, 5}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Contains(t, err.Error(), "radii")
}

func TestWithNeighborDistance(t *testing.T) {
	s := snapshotOf(t, walker(0, 0, 1, 1), walker(1, 1, 0, 0))
	wide := s.WithNeighborDistance(40)

	assert.Equal(t, 40.0, wide.Agent(1).NeighborDistance)
	assert.Equal(t, 15.0, s.Agent(1).NeighborDistance)
	assert.Equal(t, s.IDs(), wide.IDs())
}
