package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame of the visualizer.
const (
	PhaseInput  = "input"
	PhaseStep   = "step"
	PhaseRender = "render"
	PhaseHUD    = "hud"
)

// Phases lists every frame phase in execution order.
var Phases = []string{PhaseInput, PhaseStep, PhaseRender, PhaseHUD}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameWork time.Duration
	Phases    map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall-clock interval between presented frames
	lastPresent time.Time
	interval    time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameWork: now.Sub(p.frameStart),
		Phases:    p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent marks a buffer swap. The interval between two calls gives
// the displayed frame rate, which includes vsync waits.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.interval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated frame statistics.
type PerfStats struct {
	AvgWork time.Duration
	MinWork time.Duration
	MaxWork time.Duration

	// Average duration and share of frame work per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Frames per second the work alone would allow
	WorkFPS float64

	PresentInterval time.Duration
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.interval > 0 {
		fps = float64(time.Second) / float64(p.interval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			PresentInterval: p.interval,
			FPS:             fps,
		}
	}

	var total, minWork, maxWork time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameWork
		if i == 0 || s.FrameWork < minWork {
			minWork = s.FrameWork
		}
		if s.FrameWork > maxWork {
			maxWork = s.FrameWork
		}
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration, len(phaseSum))
	phasePct := make(map[string]float64, len(phaseSum))
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var workFPS float64
	if avg > 0 {
		workFPS = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgWork:         avg,
		MinWork:         minWork,
		MaxWork:         maxWork,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		WorkFPS:         workFPS,
		PresentInterval: p.interval,
		FPS:             fps,
	}
}

// LogStats logs frame statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_work_us", s.AvgWork.Microseconds(),
		"min_work_us", s.MinWork.Microseconds(),
		"max_work_us", s.MaxWork.Microseconds(),
		"work_fps", int(s.WorkFPS),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_work_us", s.AvgWork.Microseconds()),
		slog.Int64("min_work_us", s.MinWork.Microseconds()),
		slog.Int64("max_work_us", s.MaxWork.Microseconds()),
		slog.Float64("work_fps", s.WorkFPS),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	Frame     uint64  `csv:"frame"`
	AvgWorkUS int64   `csv:"avg_work_us"`
	MinWorkUS int64   `csv:"min_work_us"`
	MaxWorkUS int64   `csv:"max_work_us"`
	WorkFPS   float64 `csv:"work_fps"`
	FPS       float64 `csv:"fps"`
	InputPct  float64 `csv:"input_pct"`
	StepPct   float64 `csv:"step_pct"`
	RenderPct float64 `csv:"render_pct"`
	HUDPct    float64 `csv:"hud_pct"`
}

// ToCSV flattens the stats for the frame that closed the window.
func (s PerfStats) ToCSV(frame uint64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:     frame,
		AvgWorkUS: s.AvgWork.Microseconds(),
		MinWorkUS: s.MinWork.Microseconds(),
		MaxWorkUS: s.MaxWork.Microseconds(),
		WorkFPS:   s.WorkFPS,
		FPS:       s.FPS,
		InputPct:  s.PhasePct[PhaseInput],
		StepPct:   s.PhasePct[PhaseStep],
		RenderPct: s.PhasePct[PhaseRender],
		HUDPct:    s.PhasePct[PhaseHUD],
	}
}
