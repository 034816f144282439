// Package fluid simulates a grid-seeded set of point particles under gravity,
// damping, boundary reflection and radial impulses.
package fluid

import (
	"errors"
	"math"
)

// Default physics constants.
const (
	DefaultSpacing      = 5.0
	DefaultDamping      = 0.96
	DefaultGravity      = 5 * -9.8
	DefaultMaxSpeedHint = 10.0
)

var (
	// ErrEmptyDomain is returned when the domain has no area.
	ErrEmptyDomain = errors.New("fluid: domain width and height must be positive")
	// ErrBadSpacing is returned when the grid spacing cannot seed particles.
	ErrBadSpacing = errors.New("fluid: grid spacing must be positive")
)

// Particle is a point mass. The layout is four packed float32s so a
// []Particle can be uploaded as an interleaved vertex buffer.
type Particle struct {
	X, Y   float32
	VX, VY float32
}

// Speed returns the velocity magnitude.
func (p Particle) Speed() float32 {
	return float32(math.Sqrt(float64(p.VX*p.VX + p.VY*p.VY)))
}

// Params holds the physics parameters of a field.
type Params struct {
	Spacing      float32
	Damping      float32
	Gravity      float32
	MaxSpeedHint float32

	// Interaction adds pairwise forces during Step. Nil keeps Step O(n).
	Interaction Interaction
}

// DefaultParams returns the tuned default parameters.
func DefaultParams() Params {
	return Params{
		Spacing:      DefaultSpacing,
		Damping:      DefaultDamping,
		Gravity:      DefaultGravity,
		MaxSpeedHint: DefaultMaxSpeedHint,
	}
}

// Field owns a fixed set of particles inside a reflecting rectangle
// [0,width]x[0,height] with a Y-up convention.
type Field struct {
	particles []Particle
	width     float32
	height    float32
	params    Params
}

// NewField seeds particles on a regular grid covering [0,width)x[0,height)
// at rest.
func NewField(width, height int, p Params) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyDomain
	}
	if p.Spacing <= 0 {
		return nil, ErrBadSpacing
	}

	f := &Field{
		width:  float32(width),
		height: float32(height),
		params: p,
	}
	f.seed()
	return f, nil
}

// seed (re)builds the construction grid, scanning rows bottom to top.
func (f *Field) seed() {
	cols := int(math.Ceil(float64(f.width / f.params.Spacing)))
	rows := int(math.Ceil(float64(f.height / f.params.Spacing)))

	if cap(f.particles) < cols*rows {
		f.particles = make([]Particle, 0, cols*rows)
	}
	f.particles = f.particles[:0]

	for row := 0; row < rows; row++ {
		y := float32(row) * f.params.Spacing
		if y >= f.height {
			break
		}
		for col := 0; col < cols; col++ {
			x := float32(col) * f.params.Spacing
			if x >= f.width {
				break
			}
			f.particles = append(f.particles, Particle{X: x, Y: y})
		}
	}
}

// Reset puts every particle back on its construction grid slot at rest.
func (f *Field) Reset() {
	f.seed()
}

// Step advances the field by dt. Per particle, in order: integrate position
// with the previous velocity, damp, apply gravity, apply the optional
// interaction force, then reflect velocity on each axis that is out of
// bounds. Positions are never clamped, so a particle may stay outside for
// one more step before the flipped velocity brings it back.
func (f *Field) Step(dt float32) {
	damping := f.params.Damping
	gravity := f.params.Gravity * dt
	inter := f.params.Interaction

	if inter != nil {
		inter.Prepare(f.particles, dt)
	}

	for i := range f.particles {
		p := &f.particles[i]

		p.X += p.VX * dt
		p.Y += p.VY * dt

		p.VX *= damping
		p.VY *= damping

		p.VY += gravity

		if inter != nil {
			fx, fy := inter.Force(f.particles, i)
			p.VX += fx * dt
			p.VY += fy * dt
		}

		if p.X < 0 || p.X > f.width {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > f.height {
			p.VY = -p.VY
		}
	}
}

// Perturb adds a radial impulse to every particle strictly within radius of
// (x, y), scaled by strength/distance. Negative strength pulls toward the
// center. A particle exactly at the center is left unchanged, and a
// non-positive radius touches nothing.
func (f *Field) Perturb(x, y, radius, strength float32) {
	if radius <= 0 {
		return
	}
	radiusSq := radius * radius
	for i := range f.particles {
		p := &f.particles[i]
		dx := p.X - x
		dy := p.Y - y
		distSq := dx*dx + dy*dy
		if distSq >= radiusSq || distSq == 0 {
			continue
		}
		dist := float32(math.Sqrt(float64(distSq)))
		p.VX += strength * dx / dist
		p.VY += strength * dy / dist
	}
}

// Apply applies a perturbation.
func (f *Field) Apply(pt Perturbation) {
	f.Perturb(pt.X, pt.Y, pt.Radius, pt.Strength)
}

// Particles returns the live particle slice. Callers must treat it as
// read-only and must not hold it across Step, Perturb or Reset.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len returns the particle count, which is constant after construction.
func (f *Field) Len() int {
	return len(f.particles)
}

// Width returns the domain width.
func (f *Field) Width() float32 { return f.width }

// Height returns the domain height.
func (f *Field) Height() float32 { return f.height }

// MaxSpeedHint returns the default speed used to normalise colors.
func (f *Field) MaxSpeedHint() float32 { return f.params.MaxSpeedHint }

// Params returns the field parameters.
func (f *Field) Params() Params { return f.params }
