package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSafeNormalizeZero(t *testing.T) {
	n := SafeNormalize(mgl64.Vec3{})
	assert.Equal(t, mgl64.Vec3{}, n)
	for _, c := range n {
		assert.False(t, math.IsNaN(c))
	}
}

func TestSafeNormalizeUnit(t *testing.T) {
	n := SafeNormalize(Planar(3, 4))
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n.X(), 1e-12)
	assert.InDelta(t, 0.8, n.Z(), 1e-12)
}

func TestClampLen(t *testing.T) {
	assert.Equal(t, Planar(1, 0), ClampLen(Planar(1, 0), 2))
	assert.InDelta(t, 2.0, ClampLen(Planar(10, 10), 2).Len(), 1e-12)
}

func assertVec(t *testing.T, want, got mgl64.Vec3, msgAndArgs ...any) {
	t.Helper()
	for k := range want {
		assert.InDelta(t, want[k], got[k], 1e-12, msgAndArgs...)
	}
}

func TestRotateYMatchesHeading(t *testing.T) {
	forward := Planar(0, 1)
	for _, a := range []float64{0, math.Pi / 6, math.Pi / 2, math.Pi, 4} {
		assertVec(t, Heading(a), RotateY(forward, a), "angle %v", a)
	}
	// cos(pi/2) leaves a residue near 6e-17 on z.
	assertVec(t, Planar(1, 0), RotateY(forward, math.Pi/2))
}

func TestSignedAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, SignedAngle(Planar(0, 1), Planar(1, 0)), 1e-12)
	assert.InDelta(t, -math.Pi/2, SignedAngle(Planar(0, 1), Planar(-1, 0)), 1e-12)
	assert.Equal(t, 0.0, SignedAngle(mgl64.Vec3{}, Planar(1, 0)))
}

func TestPerpIsOrthogonal(t *testing.T) {
	v := Planar(2, -3)
	assert.Equal(t, 0.0, v.Dot(Perp(v)))
}
