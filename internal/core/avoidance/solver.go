package avoidance

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Solver turns a preferred velocity into a safe one for agent i. Solve only
// reads the snapshot, so one Solver may serve many goroutines at once.
type Solver interface {
	Strategy() Strategy
	Solve(s *Snapshot, i int, preferred mgl64.Vec3) mgl64.Vec3
}

var (
	_ Solver = (*SampledSolver)(nil)
	_ Solver = (*ORCASolver)(nil)
	_ Solver = (*ConeSolver)(nil)
)

// NewSolver builds the solver selected by p.Strategy.
func NewSolver(p Params) (Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.Strategy {
	case StrategySampled:
		return NewSampledSolver(p), nil
	case StrategyORCA:
		return NewORCASolver(p), nil
	case StrategyCone:
		return NewConeSolver(p), nil
	default:
		return nil, errors.Wrapf(ErrUnknownSolver, "strategy %q", p.Strategy)
	}
}
