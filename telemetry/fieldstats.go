package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/driftfield/fluid"
)

// FieldStats summarises the particle field at one frame.
type FieldStats struct {
	Frame     uint64 `csv:"frame"`
	Particles int    `csv:"particles"`

	MeanSpeed float64 `csv:"speed_mean"`
	StdSpeed  float64 `csv:"speed_std"`
	P50Speed  float64 `csv:"speed_p50"`
	P90Speed  float64 `csv:"speed_p90"`
	MaxSpeed  float64 `csv:"speed_max"`

	// Unit-mass kinetic energy, 0.5 * sum(v^2)
	KineticEnergy float64 `csv:"kinetic_energy"`

	// Particles outside [0,w]x[0,h], each back inside within a few steps
	OutOfBounds int `csv:"out_of_bounds"`

	CentroidX float64 `csv:"centroid_x"`
	CentroidY float64 `csv:"centroid_y"`
}

// ComputeFieldStats computes speed distribution and energy for the field's
// particles. scratch is reused when large enough and may be nil.
func ComputeFieldStats(frame uint64, f *fluid.Field, scratch []float64) (FieldStats, []float64) {
	ps := f.Particles()
	s := FieldStats{Frame: frame, Particles: len(ps)}
	if len(ps) == 0 {
		return s, scratch
	}

	if cap(scratch) < len(ps) {
		scratch = make([]float64, len(ps))
	}
	speeds := scratch[:len(ps)]

	w, h := f.Width(), f.Height()
	var sumX, sumY float64
	for i := range ps {
		p := &ps[i]
		speeds[i] = float64(p.Speed())
		sumX += float64(p.X)
		sumY += float64(p.Y)
		if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
			s.OutOfBounds++
		}
	}

	n := float64(len(ps))
	s.CentroidX = sumX / n
	s.CentroidY = sumY / n

	if len(speeds) > 1 {
		s.MeanSpeed, s.StdSpeed = stat.MeanStdDev(speeds, nil)
	} else {
		s.MeanSpeed = speeds[0]
	}
	s.KineticEnergy = 0.5 * floats.Dot(speeds, speeds)
	s.MaxSpeed = floats.Max(speeds)

	sort.Float64s(speeds)
	s.P50Speed = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	s.P90Speed = stat.Quantile(0.9, stat.Empirical, speeds, nil)

	return s, scratch
}

// LogValue implements slog.LogValuer.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Int("particles", s.Particles),
		slog.Float64("speed_mean", round3(s.MeanSpeed)),
		slog.Float64("speed_p90", round3(s.P90Speed)),
		slog.Float64("speed_max", round3(s.MaxSpeed)),
		slog.Float64("kinetic_energy", round3(s.KineticEnergy)),
		slog.Int("out_of_bounds", s.OutOfBounds),
	)
}

// LogStats logs the field summary.
func (s FieldStats) LogStats() {
	slog.Info("field", "stats", s)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
