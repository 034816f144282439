package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseStep)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgWork <= 0 {
		t.Error("expected positive average frame work")
	}
	if _, ok := stats.PhaseAvg[PhaseStep]; !ok {
		t.Error("expected step phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseInput]; ok {
		t.Error("input phase was never started but is tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseStep)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgWork <= 0 {
		t.Error("expected positive average after window filled")
	}
	if stats.WorkFPS <= 0 {
		t.Error("expected positive work fps")
	}
	if stats.MinWork > stats.AvgWork || stats.AvgWork > stats.MaxWork {
		t.Errorf("expected min <= avg <= max, got %v %v %v", stats.MinWork, stats.AvgWork, stats.MaxWork)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseInput)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(2 * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseRender] <= stats.PhasePct[PhaseInput] {
		t.Errorf("expected render (%v%%) > input (%v%%)", stats.PhasePct[PhaseRender], stats.PhasePct[PhaseInput])
	}

	row := stats.ToCSV(42)
	if row.Frame != 42 || row.RenderPct != stats.PhasePct[PhaseRender] {
		t.Errorf("unexpected csv row %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgWork != 0 {
		t.Error("expected zero avg work for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.PresentInterval < 15*time.Millisecond {
		t.Errorf("expected interval >= 15ms, got %v", stats.PresentInterval)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected fps in (0, 70], got %v", stats.FPS)
	}
}
