package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/driftfield/fluid"
)

func newTestField(t *testing.T, w, h int) *fluid.Field {
	t.Helper()
	f, err := fluid.NewField(w, h, fluid.DefaultParams())
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func TestComputeFieldStats_AtRest(t *testing.T) {
	f := newTestField(t, 100, 50)

	s, _ := ComputeFieldStats(1, f, nil)

	if s.Particles != f.Len() {
		t.Errorf("expected %d particles, got %d", f.Len(), s.Particles)
	}
	if s.MaxSpeed != 0 || s.MeanSpeed != 0 || s.KineticEnergy != 0 {
		t.Errorf("expected a still field, got %+v", s)
	}
	if s.OutOfBounds != 0 {
		t.Errorf("expected no particles out of bounds, got %d", s.OutOfBounds)
	}
	// Seeded lattice 0,5,...,95 x 0,5,...,45
	if math.Abs(s.CentroidX-47.5) > 1e-6 || math.Abs(s.CentroidY-22.5) > 1e-6 {
		t.Errorf("unexpected centroid (%v, %v)", s.CentroidX, s.CentroidY)
	}
}

func TestComputeFieldStats_AfterFall(t *testing.T) {
	f := newTestField(t, 200, 200)
	for i := 0; i < 30; i++ {
		f.Step(0.016)
	}

	s, scratch := ComputeFieldStats(30, f, nil)

	if s.MaxSpeed <= 0 {
		t.Fatal("expected particles to be moving after falling")
	}
	if s.P50Speed > s.P90Speed || s.P90Speed > s.MaxSpeed {
		t.Errorf("expected p50 <= p90 <= max, got %v %v %v", s.P50Speed, s.P90Speed, s.MaxSpeed)
	}
	if s.MeanSpeed > s.MaxSpeed {
		t.Errorf("mean %v above max %v", s.MeanSpeed, s.MaxSpeed)
	}
	if s.StdSpeed < 0 || math.IsNaN(s.StdSpeed) {
		t.Errorf("invalid stddev %v", s.StdSpeed)
	}

	var want float64
	outside := 0
	for _, p := range f.Particles() {
		v := float64(p.Speed())
		want += 0.5 * v * v
		if p.Y < 0 || p.Y > f.Height() || p.X < 0 || p.X > f.Width() {
			outside++
		}
	}
	// The bottom row overshoots the floor for a step before reflecting
	if s.OutOfBounds != outside {
		t.Errorf("expected %d particles outside, got %d", outside, s.OutOfBounds)
	}
	if math.Abs(s.KineticEnergy-want) > 1e-6*(1+want) {
		t.Errorf("kinetic energy %v, want %v", s.KineticEnergy, want)
	}

	// Scratch buffer is reused on the next call
	_, again := ComputeFieldStats(31, f, scratch)
	if &again[0] != &scratch[0] {
		t.Error("expected scratch buffer to be reused")
	}
}

func TestComputeFieldStats_SingleParticle(t *testing.T) {
	f := newTestField(t, 1, 1)
	f.Apply(fluid.Perturbation{X: 0.5, Y: 0.5, Radius: 10, Strength: 3})

	s, _ := ComputeFieldStats(0, f, nil)

	if s.Particles != 1 {
		t.Fatalf("expected 1 particle, got %d", s.Particles)
	}
	if s.StdSpeed != 0 {
		t.Errorf("expected zero stddev for one sample, got %v", s.StdSpeed)
	}
	if s.MeanSpeed != s.MaxSpeed || s.P50Speed != s.MaxSpeed {
		t.Errorf("expected all speed stats equal, got %+v", s)
	}
}
