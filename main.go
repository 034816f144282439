package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output field and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	if !rl.IsWindowReady() {
		slog.Error("failed to create window", "width", cfg.Screen.Width, "height", cfg.Screen.Height)
		os.Exit(1)
	}
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(game.Options{
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}

	slog.Info("starting visualizer",
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"blur_passes", cfg.Render.BlurPasses,
		"max_frames", *maxFrames,
	)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= uint64(*maxFrames) {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}

	g.Unload()
	rl.CloseWindow()
}
