package game

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUD panel layout
const (
	hudX      = 10
	hudY      = 10
	hudWidth  = 280
	hudHeight = 190
)

var hudBounds = rl.Rectangle{X: hudX, Y: hudY, Width: hudWidth, Height: hudHeight}

// drawHUD draws the debug panel: frame stats plus blur and reset controls.
func (g *Game) drawHUD() {
	rl.DrawRectangleRec(hudBounds, rl.Fade(rl.Black, 0.6))
	rl.DrawRectangleLinesEx(hudBounds, 1, rl.DarkGray)

	x := int32(hudX + 10)
	y := int32(hudY + 10)
	line := func(text string) {
		rl.DrawText(text, x, y, 16, rl.RayWhite)
		y += 20
	}

	stats := g.perf.Stats()
	line(fmt.Sprintf("FPS: %d  work: %s", rl.GetFPS(), stats.AvgWork.Round(time.Microsecond)))
	line(fmt.Sprintf("Particles: %d", g.field.Len()))
	line(fmt.Sprintf("Max speed: %.2f", g.pipeline.LastMaxSpeed()))
	line(fmt.Sprintf("Frame: %d  GL errors: %d", g.frame, g.pipeline.GLErrors()))
	line(fmt.Sprintf("Blur passes: %d", g.pipeline.BlurPasses()))

	passes := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: hudWidth - 60, Height: 20},
		"0", fmt.Sprint(maxBlurPasses),
		float32(g.pipeline.BlurPasses()), 0, maxBlurPasses,
	)
	g.setBlurPasses(int(passes + 0.5))
	y += 30

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 30}, "Reset Field") {
		g.field.Reset()
	}

	rl.DrawText("R reset  D hud  B/N blur", x, hudY+hudHeight-20, 12, rl.Gray)
}

// pointerOverHUD reports whether the mouse is on the visible panel, where
// clicks drive the controls instead of the field.
func (g *Game) pointerOverHUD() bool {
	return g.showHUD && rl.CheckCollisionPointRec(rl.GetMousePosition(), hudBounds)
}
