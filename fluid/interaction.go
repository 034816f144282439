package fluid

import "math"

// Interaction computes pairwise forces for Step. Prepare is called once at
// the start of each Step with that step's dt, Force once per particle after
// gravity. Force sees earlier particles already moved by this step.
//
// Interactions are strictly opt-in: the default field has none, keeping
// Step linear in the particle count.
type Interaction interface {
	Prepare(particles []Particle, dt float32)
	Force(particles []Particle, i int) (fx, fy float32)
}

// Repulsion pushes particles away from neighbours closer than Radius. The
// push from each neighbour is Scale * |v_i| * (Radius - d) / Radius along
// the separating direction, so resting particles exert nothing on each other.
type Repulsion struct {
	Radius float32
	Scale  float32

	grid    *SpatialGrid
	scratch []int32
	drift   float32 // largest move any particle makes this step
}

// NewRepulsion creates a grid-accelerated repulsion for a domain.
func NewRepulsion(width, height, radius, scale float32) *Repulsion {
	return &Repulsion{
		Radius: radius,
		Scale:  scale,
		grid:   NewSpatialGrid(width, height, radius),
	}
}

// Prepare rebuilds the neighbour grid and records how far a particle can
// travel from its bucket during the step.
func (r *Repulsion) Prepare(particles []Particle, dt float32) {
	r.grid.Rebuild(particles)

	var maxSq float32
	for i := range particles {
		p := &particles[i]
		if s := p.VX*p.VX + p.VY*p.VY; s > maxSq {
			maxSq = s
		}
	}
	r.drift = float32(math.Sqrt(float64(maxSq))) * float32(math.Abs(float64(dt)))
}

// Force returns the repulsion acting on particle i.
func (r *Repulsion) Force(particles []Particle, i int) (float32, float32) {
	p := particles[i]
	r.scratch = r.grid.QueryRadiusInto(r.scratch[:0], particles, p.X, p.Y, r.Radius, r.drift, i)

	var fx, fy float32
	speed := p.Speed()
	for _, j := range r.scratch {
		dx, dy := repel(p, particles[j], speed, r.Radius, r.Scale)
		fx += dx
		fy += dy
	}
	return fx, fy
}

// BruteForceRepulsion is Repulsion without the grid: every pair is tested.
// Only suitable for small fields.
type BruteForceRepulsion struct {
	Radius float32
	Scale  float32
}

// Prepare is a no-op.
func (BruteForceRepulsion) Prepare([]Particle, float32) {}

// Force returns the repulsion acting on particle i.
func (r BruteForceRepulsion) Force(particles []Particle, i int) (float32, float32) {
	p := particles[i]
	speed := p.Speed()
	radiusSq := r.Radius * r.Radius

	var fx, fy float32
	for j := range particles {
		if j == i {
			continue
		}
		q := particles[j]
		dx := p.X - q.X
		dy := p.Y - q.Y
		if dx*dx+dy*dy >= radiusSq {
			continue
		}
		ax, ay := repel(p, q, speed, r.Radius, r.Scale)
		fx += ax
		fy += ay
	}
	return fx, fy
}

// repel returns the force q exerts on p. Coincident particles have no
// separating direction and contribute nothing.
func repel(p, q Particle, speed, radius, scale float32) (float32, float32) {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist == 0 || dist >= radius {
		return 0, 0
	}
	strength := scale * speed * (radius - dist) / radius
	return dx / dist * strength, dy / dist * strength
}
