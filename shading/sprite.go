package shading

import (
	"math"

	"github.com/pthm-cable/driftfield/fluid"
)

// DefaultSpeedEpsilon floors the per-frame max speed so color
// normalisation never divides by zero.
const DefaultSpeedEpsilon = 1e-5

// RGB is a linear color with components in [0,1].
type RGB struct {
	R, G, B float32
}

// RGBA is a linear color with alpha, components in [0,1].
type RGBA struct {
	R, G, B, A float32
}

// Palette holds the sprite color endpoints and translucency.
type Palette struct {
	Slow  RGB // color at rest
	Fast  RGB // color at the frame's max speed
	Alpha float32
}

// DefaultPalette returns green-to-magenta at 0.7 alpha.
func DefaultPalette() Palette {
	return Palette{
		Slow:  RGB{0, 1, 0},
		Fast:  RGB{1, 0, 1},
		Alpha: 0.7,
	}
}

// Vec3 returns the color as a uniform-ready slice.
func (c RGB) Vec3() []float32 {
	return []float32{c.R, c.G, c.B}
}

// MaxSpeed returns the largest particle speed, never less than epsilon.
func MaxSpeed(particles []fluid.Particle, epsilon float32) float32 {
	var maxSq float32
	for i := range particles {
		p := &particles[i]
		if s := p.VX*p.VX + p.VY*p.VY; s > maxSq {
			maxSq = s
		}
	}
	m := float32(math.Sqrt(float64(maxSq)))
	if m < epsilon {
		m = epsilon
	}
	return m
}

// SpriteMask reports whether a fragment at point coordinate (u, v) in
// [0,1]x[0,1] lies inside the particle disc. Fragments outside are
// discarded.
func SpriteMask(u, v float32) bool {
	x := 2*u - 1
	y := 2*v - 1
	return x*x+y*y <= 1
}

// SpriteColor returns the fragment color for a particle moving at speed
// when the fastest particle this frame moves at maxSpeed.
func SpriteColor(speed, maxSpeed float32, pal Palette) RGBA {
	t := float32(0)
	if maxSpeed > 0 {
		t = speed / maxSpeed
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return RGBA{
		R: pal.Slow.R + (pal.Fast.R-pal.Slow.R)*t,
		G: pal.Slow.G + (pal.Fast.G-pal.Slow.G)*t,
		B: pal.Slow.B + (pal.Fast.B-pal.Slow.B)*t,
		A: pal.Alpha,
	}
}
