package crowd

import (
	"math"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// Store owns the mutable agent set. Agents keep insertion order, which is the
// index order of every snapshot the store produces.
type Store struct {
	mu     sync.RWMutex
	agents []Agent
	index  map[AgentID]int
}

func NewStore() *Store {
	return &Store{index: make(map[AgentID]int)}
}

// Add validates a and appends it. A zero ID is replaced with a fresh one.
func (s *Store) Add(a Agent) (AgentID, error) {
	if a.ID == (AgentID{}) {
		a.ID = NewAgentID()
	}
	a.Position = physics.Flatten(a.Position)
	a.Velocity = physics.Flatten(a.Velocity)
	a.Goal = physics.Flatten(a.Goal)
	if err := avoidance.ValidateAgent(a.ID.String(), a.State()); err != nil {
		return AgentID{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[a.ID]; exists {
		return AgentID{}, errors.Errorf("agent %s already exists", a.ID)
	}
	s.index[a.ID] = len(s.agents)
	s.agents = append(s.agents, a)
	return a.ID, nil
}

// Remove deletes the agent and reports whether it was present.
func (s *Store) Remove(id AgentID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.agents = slices.Delete(s.agents, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.agents); j++ {
		s.index[s.agents[j].ID] = j
	}
	return true
}

func (s *Store) Get(id AgentID) (Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Agent{}, false
	}
	return s.agents[i], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// Agents returns a copy of every agent in index order.
func (s *Store) Agents() []Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.agents)
}

// SetGoal retargets one agent.
func (s *Store) SetGoal(id AgentID, goal mgl64.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return errors.Wrapf(ErrUnknownAgent, "%s", id)
	}
	s.agents[i].Goal = physics.Flatten(goal)
	return nil
}

// Snapshot captures the current agents for one tick.
func (s *Store) Snapshot() (*avoidance.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.agents))
	states := make([]avoidance.AgentState, len(s.agents))
	for i := range s.agents {
		ids[i] = s.agents[i].ID.String()
		states[i] = s.agents[i].State()
	}
	return avoidance.NewSnapshot(ids, states)
}

// Apply writes back a tick result: every agent adopts its new velocity and
// advances by velocity*dt. The result must cover exactly the current agents
// in the same order, otherwise nothing is written. The returned slice is a
// copy of the agents as committed, taken under the same lock.
func (s *Store) Apply(res *avoidance.Result, dt float64) ([]Agent, error) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return nil, errors.Wrapf(ErrInvalidStep, "dt %v", dt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(res.IDs) != len(s.agents) || len(res.Velocities) != len(s.agents) {
		return nil, errors.Wrapf(ErrStaleResult, "%d velocities for %d agents", len(res.Velocities), len(s.agents))
	}
	for i := range s.agents {
		if res.IDs[i] != s.agents[i].ID.String() {
			return nil, errors.Wrapf(ErrStaleResult, "slot %d holds %s, want %s", i, res.IDs[i], s.agents[i].ID)
		}
	}

	for i := range s.agents {
		a := &s.agents[i]
		a.Velocity = physics.Flatten(res.Velocities[i])
		a.Position = a.Position.Add(a.Velocity.Mul(dt))
	}
	return slices.Clone(s.agents), nil
}
