package avoidance

import (
	"math"

	"github.com/pkg/errors"
)

// Strategy selects the collision-avoidance solver.
type Strategy string

const (
	StrategySampled Strategy = "sampled"
	StrategyORCA    Strategy = "orca"
	StrategyCone    Strategy = "cone"
)

// PenaltyMode selects how the sampled solver charges predicted collisions.
type PenaltyMode string

const (
	// PenaltyInverse charges TTCWeight/ttc scaled by the reciprocal weight of
	// the other agent.
	PenaltyInverse PenaltyMode = "inverse"
	// PenaltyPriority charges (Horizon-ttc)*TTCWeight, and only against agents
	// with a higher index: lower indices keep right of way.
	PenaltyPriority PenaltyMode = "priority"
)

// weightEpsilon keeps the reciprocal weight finite when both weights are zero.
const weightEpsilon = 1e-4

// Params holds every tunable of the engine. The zero value is not usable;
// start from DefaultParams.
type Params struct {
	Strategy    Strategy    `yaml:"strategy" json:"strategy"`
	SampleCount int         `yaml:"sample_count" json:"sample_count"`
	PenaltyMode PenaltyMode `yaml:"penalty_mode" json:"penalty_mode"`

	// NeighborDistanceOverride replaces every agent's sensing range when > 0.
	NeighborDistanceOverride float64 `yaml:"neighbor_distance_override" json:"neighbor_distance_override"`

	// Horizon is the look-ahead in seconds, shared by the TTC penalty and the
	// ORCA truncation.
	Horizon   float64 `yaml:"ttc_horizon" json:"ttc_horizon"`
	TTCWeight float64 `yaml:"ttc_weight" json:"ttc_weight"`

	CrowdingAlignment   float64 `yaml:"crowding_alignment" json:"crowding_alignment"`
	CrowdingDistance    float64 `yaml:"crowding_distance" json:"crowding_distance"`
	CrowdingSpeedFactor float64 `yaml:"crowding_speed_factor" json:"crowding_speed_factor"`

	// ArrivalRadius stops an agent once its goal is closer than this. Zero
	// disables arrival.
	ArrivalRadius float64 `yaml:"arrival_radius" json:"arrival_radius"`

	// Workers bounds the tick worker pool: 0 uses GOMAXPROCS, 1 runs inline.
	Workers   int `yaml:"workers" json:"workers"`
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`
}

// DefaultParams returns the per-tick sampled configuration.
func DefaultParams() Params {
	return Params{
		Strategy:            StrategySampled,
		SampleCount:         36,
		PenaltyMode:         PenaltyInverse,
		Horizon:             3,
		TTCWeight:           10,
		CrowdingAlignment:   0.8,
		CrowdingDistance:    1,
		CrowdingSpeedFactor: 0.8,
		ChunkSize:           16,
	}
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	switch p.Strategy {
	case StrategySampled, StrategyORCA, StrategyCone:
	default:
		return errors.Wrapf(ErrUnknownSolver, "strategy %q", p.Strategy)
	}
	switch p.PenaltyMode {
	case PenaltyInverse, PenaltyPriority:
	default:
		return errors.Wrapf(ErrInvalidParams, "penalty mode %q", p.PenaltyMode)
	}
	if p.SampleCount <= 0 {
		return errors.Wrapf(ErrInvalidParams, "sample count %d", p.SampleCount)
	}
	if !positive(p.Horizon) {
		return errors.Wrapf(ErrInvalidParams, "ttc horizon %v", p.Horizon)
	}
	if !nonNegative(p.TTCWeight) {
		return errors.Wrapf(ErrInvalidParams, "ttc weight %v", p.TTCWeight)
	}
	if !nonNegative(p.NeighborDistanceOverride) {
		return errors.Wrapf(ErrInvalidParams, "neighbor distance override %v", p.NeighborDistanceOverride)
	}
	if math.IsNaN(p.CrowdingAlignment) || p.CrowdingAlignment < -1 || p.CrowdingAlignment > 1 {
		return errors.Wrapf(ErrInvalidParams, "crowding alignment %v", p.CrowdingAlignment)
	}
	if !nonNegative(p.CrowdingDistance) {
		return errors.Wrapf(ErrInvalidParams, "crowding distance %v", p.CrowdingDistance)
	}
	if !nonNegative(p.CrowdingSpeedFactor) || p.CrowdingSpeedFactor > 1 {
		return errors.Wrapf(ErrInvalidParams, "crowding speed factor %v", p.CrowdingSpeedFactor)
	}
	if !nonNegative(p.ArrivalRadius) {
		return errors.Wrapf(ErrInvalidParams, "arrival radius %v", p.ArrivalRadius)
	}
	if p.Workers < 0 {
		return errors.Wrapf(ErrInvalidParams, "workers %d", p.Workers)
	}
	if p.ChunkSize <= 0 {
		return errors.Wrapf(ErrInvalidParams, "chunk size %d", p.ChunkSize)
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }
