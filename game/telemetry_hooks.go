package game

import (
	"log/slog"

	"github.com/pthm-cable/driftfield/telemetry"
)

// flushTelemetry samples field statistics every StatsInterval frames and
// writes them, with the perf window, to the log and CSV output.
func (g *Game) flushTelemetry() {
	interval := uint64(g.cfg.Telemetry.StatsInterval)
	if interval == 0 || g.frame%interval != 0 {
		return
	}

	g.fieldStats, g.statsScratch = telemetry.ComputeFieldStats(g.frame, g.field, g.statsScratch)
	perfStats := g.perf.Stats()

	if g.logStats {
		g.fieldStats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteField(g.fieldStats); err != nil {
		slog.Error("failed to write field stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
