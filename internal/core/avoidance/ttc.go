package avoidance

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NoCollision is the time-to-collision of trajectories that never meet.
var NoCollision = math.Inf(1)

// TimeToCollision returns the earliest time at which two discs of combined
// radius r, separated by relPos and closing at relVel, start to overlap.
// It returns NoCollision when there is no relative motion, when the paths never
// come within r, or when the contact lies in the past.
func TimeToCollision(relPos, relVel mgl64.Vec3, r float64) float64 {
	a := relVel.Dot(relVel)
	if a == 0 {
		return NoCollision
	}
	b := relPos.Dot(relVel)
	c := relPos.Dot(relPos) - r*r
	discr := b*b - a*c
	if discr < 0 {
		return NoCollision
	}
	t := (b - math.Sqrt(discr)) / a
	if t < 0 {
		return NoCollision
	}
	return t
}

// Collides reports whether ttc is a finite collision time.
func Collides(ttc float64) bool { return !math.IsInf(ttc, 1) }
