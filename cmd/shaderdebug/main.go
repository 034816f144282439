// Shader debug tool - runs the GPU pipeline in a hidden window and writes
// the composited frame to a PNG file for inspection.
//
// Usage: go run ./cmd/shaderdebug -frames 60 -passes 2 -out debug.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/fluid"
	"github.com/pthm-cable/driftfield/preview"
	"github.com/pthm-cable/driftfield/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	frames := flag.Int("frames", 60, "Simulation steps before capture")
	passes := flag.Int("passes", -1, "Blur passes (-1 = use config)")
	repel := flag.Bool("repel", true, "Repel from the center on the first frame")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*configPath, *outPath, *width, *height, *frames, *passes, *repel); err != nil {
		fmt.Fprintf(os.Stderr, "shaderdebug: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, outPath string, width, height, frames, passes int, repel bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	field, err := fluid.NewField(width, height, cfg.FieldParamsFor(width, height))
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), "Shader Debug")
	if !rl.IsWindowReady() {
		return errors.New("creating hidden window and GL context failed")
	}
	defer rl.CloseWindow()

	opts := renderer.Options{
		ParticleSize: float32(cfg.Render.ParticleSize),
		BlurPasses:   cfg.Render.BlurPasses,
		SpeedEpsilon: float32(cfg.Render.SpeedEpsilon),
		Palette:      cfg.Palette(),
		ClearColor:   cfg.ClearColor(),
	}
	if passes >= 0 {
		opts.BlurPasses = passes
	}

	p, err := renderer.New(width, height, opts)
	if err != nil {
		return err
	}
	defer p.Unload()

	if repel {
		field.Perturb(float32(width)/2, float32(height)/2, float32(cfg.Input.Radius), float32(cfg.Input.RepelStrength))
	}
	dt := float32(cfg.Physics.DT)
	for i := 0; i < frames; i++ {
		field.Step(dt)
	}

	p.RenderFrame(field.Particles())
	img := p.ReadPixels()

	if err := preview.SavePNG(outPath, img); err != nil {
		return err
	}

	slog.Info("frame rendered",
		"out", outPath,
		"width", width,
		"height", height,
		"frames", frames,
		"blur_passes", p.BlurPasses(),
		"latest_target", p.LatestTarget(),
		"max_speed", p.LastMaxSpeed(),
		"gl_errors", p.GLErrors(),
	)
	return nil
}
