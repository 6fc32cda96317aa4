package avoidance

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// ConeSolver steers out of each neighbor's reciprocal velocity cone in turn.
// The cone apex sits halfway between the two agents' velocities; a desired
// velocity inside the cone is rotated onto the closer cone edge.
type ConeSolver struct{}

func NewConeSolver(Params) *ConeSolver { return &ConeSolver{} }

func (ConeSolver) Strategy() Strategy { return StrategyCone }

// Solve returns preferred unchanged when agent i has no neighbor in range.
func (c ConeSolver) Solve(s *Snapshot, i int, preferred mgl64.Vec3) mgl64.Vec3 {
	self := s.at(i)
	desired := preferred
	touched := false
	ScanNeighbors(s, i, func(n Neighbor) {
		if !n.InRange {
			return
		}
		touched = true
		other := s.at(n.Index)
		apex := self.Velocity.Add(other.Velocity.Sub(self.Velocity).Mul(0.5))
		desired = SteerOutOfCone(apex, n.Offset, self.Radius+other.Radius, desired)
	})
	if !touched {
		return preferred
	}
	return physics.ClampLen(desired, self.MaxSpeed)
}

// SteerOutOfCone returns desired unchanged when it lies outside the velocity
// cone with the given apex, axis relPos and combined radius, or when the
// agents already overlap. Otherwise it keeps the speed relative to the apex
// and turns onto the cone edge that best matches desired.
func SteerOutOfCone(apex, relPos mgl64.Vec3, combined float64, desired mgl64.Vec3) mgl64.Vec3 {
	dist := relPos.Len()
	if dist <= combined {
		return desired
	}

	axis := physics.SafeNormalize(relPos)
	half := math.Asin(combined / dist)
	relDes := desired.Sub(apex)
	if math.Abs(physics.SignedAngle(axis, relDes)) >= half {
		return desired
	}

	left := physics.RotateY(axis, -half)
	right := physics.RotateY(axis, half)
	edge := right
	if relDes.Dot(left) > relDes.Dot(right) {
		edge = left
	}
	return apex.Add(edge.Mul(relDes.Len()))
}
