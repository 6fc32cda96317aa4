package avoidance

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

func walker(x, z, goalX, goalZ float64) AgentState {
	return AgentState{
		Position:         physics.Planar(x, z),
		Goal:             physics.Planar(goalX, goalZ),
		MaxSpeed:         2,
		Radius:           0.5,
		NeighborDistance: 15,
		Weight:           1,
	}
}

func withVelocity(a AgentState, v mgl64.Vec3) AgentState {
	a.Velocity = v
	return a
}

func snapshotOf(t testing.TB, agents ...AgentState) *Snapshot {
	t.Helper()
	ids := make([]string, len(agents))
	for i := range ids {
		ids[i] = fmt.Sprintf("agent-%d", i)
	}
	s, err := NewSnapshot(ids, agents)
	require.NoError(t, err)
	return s
}

// headOn places two agents on the x axis, ten units apart, closing at full
// speed towards each other's start.
func headOn(t testing.TB) *Snapshot {
	return snapshotOf(t,
		withVelocity(walker(-5, 0, 5, 0), physics.Planar(2, 0)),
		withVelocity(walker(5, 0, -5, 0), physics.Planar(-2, 0)),
	)
}

// grid lays out n agents on a square lattice with goals mirrored through the
// origin, so that every agent crosses the crowd.
func grid(t testing.TB, n int, spacing float64) *Snapshot {
	side := 1
	for side*side < n {
		side++
	}
	agents := make([]AgentState, n)
	for i := range agents {
		x := (float64(i%side) - float64(side-1)/2) * spacing
		z := (float64(i/side) - float64(side-1)/2) * spacing
		a := walker(x, z, -x+0.25, -z-0.25)
		a.NeighborDistance = 3
		a.Velocity = physics.SafeNormalize(a.Goal.Sub(a.Position)).Mul(a.MaxSpeed)
		a.Weight = float64(1 + i%3)
		agents[i] = a
	}
	return snapshotOf(t, agents...)
}
