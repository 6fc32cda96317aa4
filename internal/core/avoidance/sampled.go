package avoidance

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// SampledSolver scores a fixed ring of full-speed candidate velocities and
// keeps the cheapest. Candidate order is the tie-break: the first sample with
// the minimum penalty wins.
type SampledSolver struct {
	directions []mgl64.Vec3
	horizon    float64
	ttcWeight  float64
	mode       PenaltyMode
}

// NewSampledSolver precomputes p.SampleCount unit directions starting at +Z
// and turning towards +X.
func NewSampledSolver(p Params) *SampledSolver {
	dirs := make([]mgl64.Vec3, p.SampleCount)
	step := 2 * math.Pi / float64(p.SampleCount)
	for k := range dirs {
		dirs[k] = physics.Heading(step * float64(k))
	}
	return &SampledSolver{
		directions: dirs,
		horizon:    p.Horizon,
		ttcWeight:  p.TTCWeight,
		mode:       p.PenaltyMode,
	}
}

func (ss *SampledSolver) Strategy() Strategy { return StrategySampled }

// Solve returns preferred unchanged when no agent is within range, otherwise
// the minimum-penalty candidate.
func (ss *SampledSolver) Solve(s *Snapshot, i int, preferred mgl64.Vec3) mgl64.Vec3 {
	return ss.Evaluate(s, i, preferred, nil)
}

// Evaluate is Solve with an optional per-sample penalty recorder.
func (ss *SampledSolver) Evaluate(s *Snapshot, i int, preferred mgl64.Vec3, debug *SampleDebug) mgl64.Vec3 {
	if debug != nil {
		debug.Reset()
	}
	if !HasNeighbor(s, i) {
		return preferred
	}

	self := s.at(i)
	best := preferred
	minPenalty := math.MaxFloat64
	for _, dir := range ss.directions {
		vcand := dir.Mul(self.MaxSpeed)
		vpen := vcand.Sub(preferred).LenSqr()
		tpen := ss.collisionPenalty(s, i, vcand)
		penalty := vpen + tpen

		if debug != nil {
			debug.add(vcand, penalty, vpen, tpen)
		}
		if penalty < minPenalty {
			minPenalty = penalty
			best = vcand
		}
	}
	return best
}

// collisionPenalty sums the time-to-collision charges of vcand against every
// other agent's last-tick velocity.
func (ss *SampledSolver) collisionPenalty(s *Snapshot, i int, vcand mgl64.Vec3) float64 {
	self := s.at(i)
	var total float64
	for j := range s.agents {
		if j == i {
			continue
		}
		other := &s.agents[j]
		relPos := other.Position.Sub(self.Position)
		relVel := vcand.Sub(other.Velocity)
		ttc := TimeToCollision(relPos, relVel, self.Radius+other.Radius)
		if ttc <= 0 || ttc >= ss.horizon {
			continue
		}

		switch ss.mode {
		case PenaltyPriority:
			if i < j {
				total += (ss.horizon - ttc) * ss.ttcWeight
			}
		default:
			reciprocal := other.Weight / (self.Weight + other.Weight + weightEpsilon)
			total += ss.ttcWeight / ttc * reciprocal
		}
	}
	return total
}

// SampleRecord is the scoring of one candidate velocity.
type SampleRecord struct {
	Velocity         mgl64.Vec3
	Penalty          float64
	DesiredPenalty   float64
	CollisionPenalty float64
}

// SampleDebug records candidate scores for inspection. It is not safe for
// concurrent use; give each evaluated agent its own recorder.
type SampleDebug struct {
	records []SampleRecord
	max     int
}

// NewSampleDebug keeps at most maxSamples records per evaluation.
func NewSampleDebug(maxSamples int) *SampleDebug {
	return &SampleDebug{records: make([]SampleRecord, 0, maxSamples), max: maxSamples}
}

func (d *SampleDebug) Reset() { d.records = d.records[:0] }

func (d *SampleDebug) Len() int { return len(d.records) }

func (d *SampleDebug) Sample(i int) SampleRecord { return d.records[i] }

// CollisionTotal sums the collision penalty over every recorded sample.
func (d *SampleDebug) CollisionTotal() float64 {
	var sum float64
	for _, r := range d.records {
		sum += r.CollisionPenalty
	}
	return sum
}

func (d *SampleDebug) add(vel mgl64.Vec3, penalty, vpen, tpen float64) {
	if len(d.records) >= d.max {
		return
	}
	d.records = append(d.records, SampleRecord{
		Velocity:         vel,
		Penalty:          penalty,
		DesiredPenalty:   vpen,
		CollisionPenalty: tpen,
	})
}
