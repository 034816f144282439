package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/input"
)

const maxBlurPasses = 16

// handleInput processes keyboard and mouse input. ESC is handled by raylib.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyR) {
		g.field.Reset()
		slog.Info("field reset", "frame", g.frame)
	}

	if rl.IsKeyPressed(rl.KeyD) {
		g.showHUD = !g.showHUD
	}

	// Blur passes with B / N
	if rl.IsKeyPressed(rl.KeyB) {
		g.setBlurPasses(g.pipeline.BlurPasses() - 1)
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.setBlurPasses(g.pipeline.BlurPasses() + 1)
	}

	g.pointer = pollPointer()
	if g.pointerOverHUD() {
		g.pointer.Primary, g.pointer.Secondary = false, false
	}
}

func (g *Game) setBlurPasses(n int) {
	if n < 0 || n > maxBlurPasses || n == g.pipeline.BlurPasses() {
		return
	}
	g.pipeline.SetBlurPasses(n)
	slog.Info("blur passes changed", "passes", n)
}

// pollPointer reads the mouse in window coordinates.
func pollPointer() input.Pointer {
	pos := rl.GetMousePosition()
	return input.Pointer{
		X:         pos.X,
		Y:         pos.Y,
		Primary:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Secondary: rl.IsMouseButtonDown(rl.MouseButtonRight),
	}
}
