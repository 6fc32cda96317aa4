package avoidance

import "github.com/go-gl/mathgl/mgl64"

// Neighbor is the classification of agent Index as seen from a focal agent.
type Neighbor struct {
	Index int
	// Offset points from the focal agent to the neighbor.
	Offset   mgl64.Vec3
	Distance float64
	// InRange is Distance < focal NeighborDistance. Coincident agents are in
	// range with a zero distance whenever the sensing range is positive.
	InRange bool
}

// ScanNeighbors visits every agent other than i, in index order.
func ScanNeighbors(s *Snapshot, i int, fn func(Neighbor)) {
	self := s.at(i)
	for j := range s.agents {
		if j == i {
			continue
		}
		offset := s.agents[j].Position.Sub(self.Position)
		dist := offset.Len()
		fn(Neighbor{
			Index:    j,
			Offset:   offset,
			Distance: dist,
			InRange:  dist < self.NeighborDistance,
		})
	}
}

// HasNeighbor reports whether any other agent is within i's sensing range.
func HasNeighbor(s *Snapshot, i int) bool {
	self := s.at(i)
	for j := range s.agents {
		if j == i {
			continue
		}
		if s.agents[j].Position.Sub(self.Position).Len() < self.NeighborDistance {
			return true
		}
	}
	return false
}
