package physics

// Planar vector helpers for ground-plane motion.
// Vectors are mgl64.Vec3 with the y component held at zero; every helper here
// is safe on zero-length input and never produces NaN or Inf.

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon guards divisions by lengths and distances.
const Epsilon = 1e-6

// Up is the rotation axis of the ground plane.
var Up = mgl64.Vec3{0, 1, 0}

// Planar builds a ground-plane vector.
func Planar(x, z float64) mgl64.Vec3 { return mgl64.Vec3{x, 0, z} }

// Flatten drops the vertical component.
func Flatten(v mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{v[0], 0, v[2]} }

// SafeNormalize returns the unit vector of v, or the zero vector when v is
// shorter than Epsilon.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// IsZero reports whether v is shorter than Epsilon.
func IsZero(v mgl64.Vec3) bool { return v.LenSqr() < Epsilon*Epsilon }

// Perp returns v rotated a quarter turn in the ground plane: (-z, 0, x).
func Perp(v mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{-v[2], 0, v[0]} }

// ClampLen scales v down to max when it is longer.
func ClampLen(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if v.Len() > max {
		return SafeNormalize(v).Mul(max)
	}
	return v
}

// Distance computes the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 { return b.Sub(a).Len() }

// RotateY rotates v by angle radians about the up axis. Rotating +Z by a
// quarter turn yields +X.
func RotateY(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	return mgl64.Rotate3DY(angle).Mul3x1(v)
}

// Heading returns the unit ground-plane direction for angle radians measured
// from +Z towards +X.
func Heading(angle float64) mgl64.Vec3 {
	s, c := math.Sincos(angle)
	return mgl64.Vec3{s, 0, c}
}

// SignedAngle returns the angle in radians from "from" to "to" about the up
// axis. The sign follows RotateY: positive when "to" lies towards +X of "from".
// Zero-length input yields zero.
func SignedAngle(from, to mgl64.Vec3) float64 {
	f, t := SafeNormalize(Flatten(from)), SafeNormalize(Flatten(to))
	if IsZero(f) || IsZero(t) {
		return 0
	}
	angle := math.Acos(mgl64.Clamp(f.Dot(t), -1, 1))
	if f.Cross(t).Dot(Up) < 0 {
		return -angle
	}
	return angle
}
