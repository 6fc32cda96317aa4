package system

import (
	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/crowd"
)

// Event types published by the runner.
const (
	EventTickCompleted = "tick.completed"
	EventRunStopped    = "run.stopped"
)

// Frame is the committed state after one tick, as streamed to viewers.
type Frame struct {
	Tick       uint64       `msgpack:"tick" json:"tick"`
	Digest     uint64       `msgpack:"digest" json:"digest"`
	Strategy   string       `msgpack:"strategy" json:"strategy"`
	Arrived    int          `msgpack:"arrived" json:"arrived"`
	Degenerate int          `msgpack:"degenerate" json:"degenerate"`
	Agents     []AgentFrame `msgpack:"agents" json:"agents"`
}

// AgentFrame is the planar state of one agent.
type AgentFrame struct {
	ID    string  `msgpack:"id" json:"id"`
	Group string  `msgpack:"group" json:"group"`
	X     float64 `msgpack:"x" json:"x"`
	Z     float64 `msgpack:"z" json:"z"`
	VX    float64 `msgpack:"vx" json:"vx"`
	VZ    float64 `msgpack:"vz" json:"vz"`
}

// NewFrame pairs a tick result with the agents it was applied to.
func NewFrame(tick uint64, res *avoidance.Result, agents []crowd.Agent) *Frame {
	f := &Frame{
		Tick:       tick,
		Digest:     res.Digest(),
		Strategy:   string(res.Strategy),
		Arrived:    res.Arrived,
		Degenerate: res.Degenerate,
		Agents:     make([]AgentFrame, len(agents)),
	}
	for i := range agents {
		a := &agents[i]
		f.Agents[i] = AgentFrame{
			ID:    a.ID.String(),
			Group: a.Group,
			X:     a.Position[0],
			Z:     a.Position[2],
			VX:    a.Velocity[0],
			VZ:    a.Velocity[2],
		}
	}
	return f
}

// RunSummary is the payload of EventRunStopped.
type RunSummary struct {
	Ticks  uint64
	Reason string
}
