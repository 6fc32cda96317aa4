package avoidance

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// crowdingBlend is the share of the repulsion direction mixed into the goal
// direction when same-direction neighbors are too close.
const crowdingBlend = 0.5

// Preferred is the shaped desired velocity of one agent.
type Preferred struct {
	Velocity mgl64.Vec3
	// Direction is the unit goal direction before crowding adjustment.
	Direction mgl64.Vec3
	// Degenerate is set when the goal coincides with the position and the
	// direction fell back to the last velocity.
	Degenerate bool
	// Arrived is set when the goal lies within the arrival radius.
	Arrived bool
	// Crowding counts the same-direction neighbors that pushed the agent aside.
	Crowding int
}

// Shaper turns goals into preferred velocities.
type Shaper struct {
	alignment   float64
	distance    float64
	speedFactor float64
	arrival     float64
}

// NewShaper builds a shaper from the crowding and arrival parameters.
func NewShaper(p Params) *Shaper {
	return &Shaper{
		alignment:   p.CrowdingAlignment,
		distance:    p.CrowdingDistance,
		speedFactor: p.CrowdingSpeedFactor,
		arrival:     p.ArrivalRadius,
	}
}

// Shape computes agent i's preferred velocity. The result never exceeds the
// agent's max speed.
func (sh *Shaper) Shape(s *Snapshot, i int) Preferred {
	self := s.at(i)
	toGoal := self.Goal.Sub(self.Position)

	var out Preferred
	if sh.arrival > 0 && toGoal.Len() < sh.arrival {
		out.Arrived = true
		return out
	}

	out.Direction = physics.SafeNormalize(toGoal)
	if physics.IsZero(out.Direction) {
		out.Degenerate = true
		out.Direction = physics.SafeNormalize(self.Velocity)
	}
	out.Velocity = out.Direction.Mul(self.MaxSpeed)

	var repulsion mgl64.Vec3
	ScanNeighbors(s, i, func(n Neighbor) {
		if !n.InRange || n.Distance >= sh.distance {
			return
		}
		other := s.at(n.Index)
		otherDir := physics.SafeNormalize(other.Goal.Sub(other.Position))
		if out.Direction.Dot(otherDir) <= sh.alignment {
			return
		}
		repulsion = repulsion.Sub(physics.SafeNormalize(n.Offset).Mul(1 / max(n.Distance, physics.Epsilon)))
		out.Crowding++
	})

	if out.Crowding > 0 {
		offsetDir := physics.SafeNormalize(out.Direction.Add(physics.SafeNormalize(repulsion).Mul(crowdingBlend)))
		out.Velocity = offsetDir.Mul(out.Velocity.Len() * sh.speedFactor)
	}
	return out
}
