package input

import (
	"testing"

	"github.com/pthm-cable/driftfield/fluid"
)

func TestPerturbations(t *testing.T) {
	m := DefaultMapper()

	tests := []struct {
		name string
		p    Pointer
		want []fluid.Perturbation
	}{
		{
			name: "idle",
			p:    Pointer{X: 100, Y: 100},
			want: nil,
		},
		{
			name: "primary attracts",
			p:    Pointer{X: 100, Y: 80, Primary: true},
			want: []fluid.Perturbation{{X: 100, Y: 1000, Radius: 300, Strength: -300}},
		},
		{
			name: "secondary repels",
			p:    Pointer{X: 0, Y: 0, Secondary: true},
			want: []fluid.Perturbation{{X: 0, Y: 1080, Radius: 300, Strength: 300}},
		},
		{
			name: "both, attract first",
			p:    Pointer{X: 960, Y: 1080, Primary: true, Secondary: true},
			want: []fluid.Perturbation{
				{X: 960, Y: 0, Radius: 300, Strength: -300},
				{X: 960, Y: 0, Radius: 300, Strength: 300},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Perturbations(tc.p, 1080)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d perturbations, got %d: %+v", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("perturbation %d = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestPerturbationsMoveField(t *testing.T) {
	f, err := fluid.NewField(100, 100, fluid.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	// Pointer near the top-left of the window lands near the field's top
	for _, pt := range DefaultMapper().Perturbations(Pointer{X: 50, Y: 10, Secondary: true}, 100) {
		f.Apply(pt)
	}

	moved := 0
	for _, p := range f.Particles() {
		if p.VX != 0 || p.VY != 0 {
			moved++
			if (p.Y > 90 && p.VY < 0) || (p.Y < 90 && p.VY > 0) {
				t.Errorf("particle at (%v,%v) pushed toward the pointer: vy=%v", p.X, p.Y, p.VY)
			}
		}
	}
	if moved == 0 {
		t.Error("expected repulsion to move particles")
	}
}
