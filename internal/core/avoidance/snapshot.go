package avoidance

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// AgentState is the part of an agent the engine reads during a tick.
type AgentState struct {
	Position mgl64.Vec3
	// Velocity is the velocity applied in the previous tick.
	Velocity mgl64.Vec3
	Goal     mgl64.Vec3

	MaxSpeed         float64
	Radius           float64
	NeighborDistance float64
	// Weight is the agent's right of way: heavier agents yield less.
	Weight float64
}

// Snapshot is the immutable, index-aligned input of one tick. It is safe for
// concurrent reads and is never modified after construction.
type Snapshot struct {
	ids    []string
	agents []AgentState
}

// NewSnapshot validates and copies the given agents. ids are only carried
// through to the result for write back.
func NewSnapshot(ids []string, agents []AgentState) (*Snapshot, error) {
	if len(ids) != len(agents) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d ids for %d agents", len(ids), len(agents))
	}
	for i := range agents {
		if err := ValidateAgent(ids[i], agents[i]); err != nil {
			return nil, errors.WithMessagef(err, "agent %d", i)
		}
	}
	return &Snapshot{
		ids:    append([]string(nil), ids...),
		agents: append([]AgentState(nil), agents...),
	}, nil
}

// FromArrays builds a snapshot from parallel per-field arrays.
func FromArrays(
	ids []string,
	positions, velocities, goals []mgl64.Vec3,
	speeds, radii, ranges, weights []float64,
) (*Snapshot, error) {
	n := len(ids)
	lengths := [...]struct {
		name string
		n    int
	}{
		{"positions", len(positions)},
		{"velocities", len(velocities)},
		{"goals", len(goals)},
		{"speeds", len(speeds)},
		{"radii", len(radii)},
		{"ranges", len(ranges)},
		{"weights", len(weights)},
	}
	for _, l := range lengths {
		if l.n != n {
			return nil, errors.Wrapf(ErrLengthMismatch, "%s has %d entries, want %d", l.name, l.n, n)
		}
	}

	agents := make([]AgentState, n)
	for i := range agents {
		agents[i] = AgentState{
			Position:         positions[i],
			Velocity:         velocities[i],
			Goal:             goals[i],
			MaxSpeed:         speeds[i],
			Radius:           radii[i],
			NeighborDistance: ranges[i],
			Weight:           weights[i],
		}
	}
	return NewSnapshot(ids, agents)
}

// ValidateAgent checks the invariants every snapshot agent must satisfy.
func ValidateAgent(id string, a AgentState) error {
	if id == "" {
		return ErrEmptyID
	}
	if !positive(a.MaxSpeed) {
		return errors.Wrapf(ErrInvalidSpeed, "%s: %v", id, a.MaxSpeed)
	}
	if !positive(a.Radius) {
		return errors.Wrapf(ErrInvalidRadius, "%s: %v", id, a.Radius)
	}
	if !nonNegative(a.NeighborDistance) {
		return errors.Wrapf(ErrInvalidRange, "%s: %v", id, a.NeighborDistance)
	}
	if !nonNegative(a.Weight) {
		return errors.Wrapf(ErrInvalidWeight, "%s: %v", id, a.Weight)
	}
	for _, v := range [...]mgl64.Vec3{a.Position, a.Velocity, a.Goal} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return errors.Wrapf(ErrNonFinite, "%s: %v", id, v)
			}
		}
	}
	return nil
}

// Len returns the number of agents.
func (s *Snapshot) Len() int { return len(s.agents) }

// Agent returns a copy of agent i.
func (s *Snapshot) Agent(i int) AgentState { return s.agents[i] }

// ID returns the identifier of agent i.
func (s *Snapshot) ID(i int) string { return s.ids[i] }

// IDs returns a copy of the identifiers in index order.
func (s *Snapshot) IDs() []string { return append([]string(nil), s.ids...) }

// WithNeighborDistance returns a copy where every agent senses d.
func (s *Snapshot) WithNeighborDistance(d float64) *Snapshot {
	agents := append([]AgentState(nil), s.agents...)
	for i := range agents {
		agents[i].NeighborDistance = d
	}
	return &Snapshot{ids: s.ids, agents: agents}
}

func (s *Snapshot) at(i int) *AgentState { return &s.agents[i] }
