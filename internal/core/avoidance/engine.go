package avoidance

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/pkg/concurrent"
)

// Result is the batch of velocities computed for one snapshot, index-aligned
// with it.
type Result struct {
	IDs        []string
	Velocities []mgl64.Vec3
	Strategy   Strategy
	// Degenerate counts agents whose goal coincided with their position.
	Degenerate int
	// Arrived counts agents stopped by the arrival radius.
	Arrived int
}

// Digest hashes the exact bits of every velocity. Two results are
// bit-identical exactly when their digests match (up to hash collisions).
func (r *Result) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range r.Velocities {
		for _, c := range v {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

type agentFlags uint8

const (
	flagDegenerate agentFlags = 1 << iota
	flagArrived
)

// Engine runs the per-tick avoidance pipeline: shape every agent's preferred
// velocity, then resolve it with the configured solver.
type Engine struct {
	params Params
	shaper *Shaper
	solver Solver
	logger log.Log
}

// NewEngine validates p and builds the solver it selects.
func NewEngine(p Params, logger log.Log) (*Engine, error) {
	solver, err := NewSolver(p)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Engine{
		params: p,
		shaper: NewShaper(p),
		solver: solver,
		logger: logger.With(log.String("strategy", string(p.Strategy))),
	}, nil
}

func (e *Engine) Params() Params { return e.params }

func (e *Engine) Solver() Solver { return e.solver }

// Step computes one velocity per agent of snap. Agents are evaluated in
// parallel chunks; each writes only its own output slot and reads only the
// snapshot, so the result does not depend on scheduling. When ctx is
// cancelled the partial buffers are dropped and ctx.Err() is returned.
func (e *Engine) Step(ctx context.Context, snap *Snapshot) (*Result, error) {
	start := time.Now()
	if e.params.NeighborDistanceOverride > 0 {
		snap = snap.WithNeighborDistance(e.params.NeighborDistanceOverride)
	}

	n := snap.Len()
	velocities := make([]mgl64.Vec3, n)
	flags := make([]agentFlags, n)

	err := concurrent.ForEachChunk(ctx, n, e.params.ChunkSize, e.params.Workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			velocities[i], flags[i] = e.solveAgent(snap, i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		IDs:        snap.IDs(),
		Velocities: velocities,
		Strategy:   e.solver.Strategy(),
	}
	for _, f := range flags {
		if f&flagDegenerate != 0 {
			res.Degenerate++
		}
		if f&flagArrived != 0 {
			res.Arrived++
		}
	}

	e.logger.WithContext(ctx).Debug("tick solved",
		log.Int("agents", n),
		log.Int("degenerate", res.Degenerate),
		log.Int("arrived", res.Arrived),
		log.Uint64("digest", res.Digest()),
		log.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (e *Engine) solveAgent(snap *Snapshot, i int) (mgl64.Vec3, agentFlags) {
	pref := e.shaper.Shape(snap, i)
	if pref.Arrived {
		return mgl64.Vec3{}, flagArrived
	}
	var f agentFlags
	if pref.Degenerate {
		f |= flagDegenerate
	}
	return e.solver.Solve(snap, i, pref.Velocity), f
}

// Step runs a single tick with a throwaway engine.
func Step(ctx context.Context, snap *Snapshot, p Params) (*Result, error) {
	e, err := NewEngine(p, nil)
	if err != nil {
		return nil, err
	}
	return e.Step(ctx, snap)
}
