package crowd

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/zeusync/crowdsim/internal/core/avoidance"
)

// AgentID identifies an agent for its whole lifetime in a store.
type AgentID uuid.UUID

func NewAgentID() AgentID { return AgentID(uuid.New()) }

// ParseAgentID parses the canonical textual form produced by String.
func ParseAgentID(s string) (AgentID, error) {
	id, err := uuid.Parse(s)
	return AgentID(id), err
}

func (id AgentID) String() string { return uuid.UUID(id).String() }

// Agent is a moving disc on the ground plane.
type Agent struct {
	ID AgentID
	// Group is a free-form label set by the scenario.
	Group string

	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Goal     mgl64.Vec3

	MaxSpeed         float64
	Radius           float64
	NeighborDistance float64
	Weight           float64
}

// State projects the agent onto the fields the avoidance engine reads.
func (a *Agent) State() avoidance.AgentState {
	return avoidance.AgentState{
		Position:         a.Position,
		Velocity:         a.Velocity,
		Goal:             a.Goal,
		MaxSpeed:         a.MaxSpeed,
		Radius:           a.Radius,
		NeighborDistance: a.NeighborDistance,
		Weight:           a.Weight,
	}
}
