// Package input maps pointer state onto field perturbations.
package input

import "github.com/pthm-cable/driftfield/fluid"

// Pointer is one frame of pointer state in window coordinates, origin
// top-left.
type Pointer struct {
	X, Y      float32
	Primary   bool // attract
	Secondary bool // repel
}

// Mapper turns held pointer buttons into perturbations.
type Mapper struct {
	Radius          float32
	AttractStrength float32 // negative pulls toward the pointer
	RepelStrength   float32
}

// DefaultMapper returns the stock 300px radius with strength -300 for
// attraction and +300 for repulsion.
func DefaultMapper() Mapper {
	return Mapper{Radius: 300, AttractStrength: -300, RepelStrength: 300}
}

// Perturbations returns the impulses for this frame, attract first when
// both buttons are held. The pointer Y is flipped into field coordinates.
func (m Mapper) Perturbations(p Pointer, screenHeight float32) []fluid.Perturbation {
	if !p.Primary && !p.Secondary {
		return nil
	}

	x, y := p.X, screenHeight-p.Y
	out := make([]fluid.Perturbation, 0, 2)
	if p.Primary {
		out = append(out, fluid.Perturbation{X: x, Y: y, Radius: m.Radius, Strength: m.AttractStrength})
	}
	if p.Secondary {
		out = append(out, fluid.Perturbation{X: x, Y: y, Radius: m.Radius, Strength: m.RepelStrength})
	}
	return out
}
