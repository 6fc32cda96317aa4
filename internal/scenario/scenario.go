// Package scenario spawns agent layouts into a crowd store.
package scenario

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/zeusync/crowdsim/internal/core/crowd"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

type Kind string

const (
	// KindCrossing sends two groups, laid out in rows, through each other
	// along the z axis.
	KindCrossing Kind = "crossing"
	// KindSwap is two agents exchanging places head on.
	KindSwap Kind = "swap"
	// KindCircle places agents on a ring with goals at the antipodes.
	KindCircle Kind = "circle"
)

var ErrUnknownKind = errors.New("unknown scenario kind")

type Config struct {
	Kind Kind `yaml:"kind"`
	// Count is agents per group for crossing and the ring size for circle.
	Count            int     `yaml:"count"`
	RowSize          int     `yaml:"row_size"`
	Spacing          float64 `yaml:"spacing"`
	RowSpacing       float64 `yaml:"row_spacing"`
	Distance         float64 `yaml:"distance"`
	Speed            float64 `yaml:"speed"`
	Radius           float64 `yaml:"radius"`
	NeighborDistance float64 `yaml:"neighbor_distance"`
	Weight           float64 `yaml:"weight"`
}

func DefaultConfig() Config {
	return Config{
		Kind:             KindCrossing,
		Count:            25,
		RowSize:          5,
		Spacing:          1,
		RowSpacing:       2,
		Distance:         20,
		Speed:            3,
		Radius:           0.5,
		NeighborDistance: 10,
		Weight:           1,
	}
}

func (c Config) Validate() error {
	switch c.Kind {
	case KindCrossing, KindSwap, KindCircle:
	default:
		return errors.Wrapf(ErrUnknownKind, "%q", c.Kind)
	}
	if c.Kind != KindSwap && c.Count <= 0 {
		return errors.Errorf("scenario count must be positive, got %d", c.Count)
	}
	if c.Kind == KindCrossing && c.RowSize <= 0 {
		return errors.Errorf("scenario row size must be positive, got %d", c.RowSize)
	}
	if !(c.Distance > 0) {
		return errors.Errorf("scenario distance must be positive, got %v", c.Distance)
	}
	return nil
}

// Populate adds the configured layout to store and returns the new ids in
// insertion order. Agent fields are validated by the store.
func Populate(store *crowd.Store, cfg Config) ([]crowd.AgentID, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var agents []crowd.Agent
	switch cfg.Kind {
	case KindCrossing:
		agents = crossing(cfg)
	case KindSwap:
		agents = swap(cfg)
	case KindCircle:
		agents = circle(cfg)
	}

	ids := make([]crowd.AgentID, 0, len(agents))
	for _, a := range agents {
		id, err := store.Add(a)
		if err != nil {
			return ids, errors.WithMessagef(err, "spawn %s agent %d", a.Group, len(ids))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c Config) agent(group string, pos, goal mgl64.Vec3) crowd.Agent {
	return crowd.Agent{
		Group:            group,
		Position:         pos,
		Goal:             goal,
		MaxSpeed:         c.Speed,
		Radius:           c.Radius,
		NeighborDistance: c.NeighborDistance,
		Weight:           c.Weight,
	}
}

// crossing spawns group "south" in rows starting at z = -Distance walking to
// +Distance, and group "north" mirrored. Each agent keeps its own lane: the
// goal is shifted two units along x from its spawn column.
func crossing(c Config) []crowd.Agent {
	out := make([]crowd.Agent, 0, 2*c.Count)
	for _, side := range [...]struct {
		group string
		sign  float64
	}{{"south", -1}, {"north", 1}} {
		for k := 0; k < c.Count; k++ {
			row, col := k/c.RowSize, k%c.RowSize
			x := -float64(col) * c.Spacing
			z := side.sign * (c.Distance - float64(row)*c.RowSpacing)
			out = append(out, c.agent(side.group,
				physics.Planar(x, z),
				physics.Planar(x+2, -side.sign*c.Distance)))
		}
	}
	return out
}

func swap(c Config) []crowd.Agent {
	d := c.Distance / 2
	return []crowd.Agent{
		c.agent("east", physics.Planar(-d, 0), physics.Planar(d, 0)),
		c.agent("west", physics.Planar(d, 0), physics.Planar(-d, 0)),
	}
}

func circle(c Config) []crowd.Agent {
	out := make([]crowd.Agent, c.Count)
	step := 2 * math.Pi / float64(c.Count)
	for k := range out {
		pos := physics.Heading(step * float64(k)).Mul(c.Distance)
		out[k] = c.agent("ring", pos, pos.Mul(-1))
	}
	return out
}
