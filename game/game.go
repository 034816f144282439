// Package game drives the visualizer: raylib window input, field stepping,
// the GPU pipeline and the debug HUD.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/fluid"
	"github.com/pthm-cable/driftfield/input"
	"github.com/pthm-cable/driftfield/renderer"
	"github.com/pthm-cable/driftfield/telemetry"
)

// Options holds runtime options that are not part of the config file.
type Options struct {
	LogStats  bool
	OutputDir string // empty disables CSV output
}

// Game holds the field, the pipeline and per-run telemetry. It must be
// created after rl.InitWindow and used on the window's thread.
type Game struct {
	cfg *config.Config

	field    *fluid.Field
	pipeline *renderer.Pipeline
	mapper   input.Mapper
	dt       float32

	// Pointer state of the current frame
	pointer input.Pointer

	showHUD bool
	frame   uint64

	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	fieldStats    telemetry.FieldStats
	statsScratch  []float64
}

// New builds the field and the render pipeline from the global config.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()

	field, err := fluid.NewField(cfg.Derived.FieldW, cfg.Derived.FieldH, cfg.FieldParamsFor(cfg.Derived.FieldW, cfg.Derived.FieldH))
	if err != nil {
		return nil, fmt.Errorf("creating field: %w", err)
	}

	pipeline, err := renderer.New(cfg.Screen.Width, cfg.Screen.Height, renderOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("creating render pipeline: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		pipeline.Unload()
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g := &Game{
		cfg:           cfg,
		field:         field,
		pipeline:      pipeline,
		mapper:        inputMapper(cfg),
		dt:            cfg.Derived.DT32,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager: om,
		logStats:      opts.LogStats,
	}

	slog.Info("field ready",
		"particles", field.Len(),
		"width", field.Width(),
		"height", field.Height(),
		"interaction", cfg.Interaction.Enabled,
	)
	return g, nil
}

// Update polls input, applies perturbations and advances the field by the
// configured fixed dt.
func (g *Game) Update() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()
	for _, pt := range g.mapper.Perturbations(g.pointer, g.cfg.Derived.ScreenH32) {
		g.field.Apply(pt)
	}

	g.perf.StartPhase(telemetry.PhaseStep)
	g.field.Step(g.dt)
}

// Draw renders the field, the optional HUD and presents.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.perf.StartPhase(telemetry.PhaseRender)
	g.pipeline.RenderFrame(g.field.Particles())

	g.perf.StartPhase(telemetry.PhaseHUD)
	if g.showHUD {
		g.drawHUD()
	}
	g.perf.EndFrame()

	rl.EndDrawing()
	g.perf.RecordPresent()

	g.frame++
	g.flushTelemetry()
}

// Frame returns the number of frames drawn.
func (g *Game) Frame() uint64 {
	return g.frame
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.pipeline != nil {
		g.pipeline.Unload()
		g.pipeline = nil
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("game unloaded", "frames", g.frame, "gl_errors", g.glErrors())
}

func (g *Game) glErrors() uint64 {
	if g.pipeline == nil {
		return 0
	}
	return g.pipeline.GLErrors()
}
