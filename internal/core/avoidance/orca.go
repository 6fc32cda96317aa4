package avoidance

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
	"github.com/zeusync/crowdsim/pkg/generic"
)

// apexEpsilon is the squared length under which the truncated-cone vector w is
// treated as sitting on the cone apex.
const apexEpsilon = 1e-6

// Line is a half-plane in velocity space. Permitted velocities v satisfy
// dot(Normal, v - Point) >= 0.
type Line struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// Permits reports whether v lies on the permitted side of l.
func (l Line) Permits(v mgl64.Vec3) bool { return l.Normal.Dot(v.Sub(l.Point)) >= 0 }

// ORCASolver builds one half-plane per in-range neighbor and pushes the
// preferred velocity through them one by one, in neighbor order. The single
// sequential projection pass is an approximation of the incremental linear
// program: the result depends on line order and may still violate an earlier
// line when several constraints are active. In symmetric head-on swaps agents
// can therefore pass well inside their combined radius; prefer sampled or
// cone when clearance matters.
type ORCASolver struct {
	horizon float64
	lines   *generic.Pool[*[]Line]
}

func NewORCASolver(p Params) *ORCASolver {
	return &ORCASolver{
		horizon: p.Horizon,
		lines: generic.NewResetPool(func() *[]Line {
			buf := make([]Line, 0, 16)
			return &buf
		}, func(buf *[]Line) *[]Line {
			*buf = (*buf)[:0]
			return buf
		}),
	}
}

func (o *ORCASolver) Strategy() Strategy { return StrategyORCA }

// Solve returns preferred unchanged when agent i has no neighbor in range.
func (o *ORCASolver) Solve(s *Snapshot, i int, preferred mgl64.Vec3) mgl64.Vec3 {
	return generic.With(o.lines, func(buf *[]Line) mgl64.Vec3 {
		*buf = o.Lines(s, i, *buf)
		if len(*buf) == 0 {
			return preferred
		}
		return Project(*buf, preferred, s.at(i).MaxSpeed)
	})
}

// Lines appends agent i's constraints to dst, one per in-range neighbor.
func (o *ORCASolver) Lines(s *Snapshot, i int, dst []Line) []Line {
	self := s.at(i)
	ScanNeighbors(s, i, func(n Neighbor) {
		if n.InRange {
			dst = append(dst, BuildLine(self, s.at(n.Index), o.horizon))
		}
	})
	return dst
}

// BuildLine computes the reciprocal half-plane that self must respect with
// respect to other. Each side takes half of the required change.
func BuildLine(self, other *AgentState, horizon float64) Line {
	relPos := other.Position.Sub(self.Position)
	relVel := self.Velocity.Sub(other.Velocity)
	combined := self.Radius + other.Radius

	var normal, u mgl64.Vec3
	if relPos.LenSqr() > combined*combined {
		w := relVel.Sub(relPos.Mul(1 / horizon))
		normal = physics.SafeNormalize(physics.Perp(relPos))
		if w.Dot(relPos) < 0 || w.LenSqr() < apexEpsilon {
			normal = physics.SafeNormalize(physics.Perp(w))
		}
		u = normal.Mul(w.Dot(normal))
	} else {
		normal = physics.SafeNormalize(physics.Perp(relPos))
		u = normal.Mul(combined - relPos.Len())
	}

	return Line{
		Point:  self.Velocity.Add(u.Mul(0.5)),
		Normal: normal,
	}
}

// Project clamps preferred to maxSpeed, then moves it onto every line whose
// forbidden side it lies on, re-clamping after each move.
func Project(lines []Line, preferred mgl64.Vec3, maxSpeed float64) mgl64.Vec3 {
	v := physics.ClampLen(preferred, maxSpeed)
	for _, l := range lines {
		if l.Permits(v) {
			continue
		}
		v = v.Sub(l.Normal.Mul(v.Sub(l.Point).Dot(l.Normal)))
		v = physics.ClampLen(physics.Flatten(v), maxSpeed)
	}
	return v
}
