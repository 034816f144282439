package preview

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/driftfield/fluid"
)

func render(t *testing.T, passes int, particles []fluid.Particle) (*Renderer, *image.RGBA) {
	t.Helper()
	opts := DefaultOptions()
	opts.BlurPasses = passes
	r, err := New(40, 40, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { r.Close() })

	img, err := r.RenderFrame(particles)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	return r, img
}

func TestRestingParticleIsSlowColor(t *testing.T) {
	_, img := render(t, 0, []fluid.Particle{{X: 20, Y: 10}})

	// Field y=10 is image row 30
	c := img.RGBAAt(20, 30)
	if c.G < 150 {
		t.Errorf("expected green sprite center, got %+v", c)
	}
	if c.R > 20 || c.B > 20 {
		t.Errorf("expected no red or blue at rest, got %+v", c)
	}

	// Nothing drawn at the mirrored row
	if g := img.RGBAAt(20, 10).G; g != 0 {
		t.Errorf("expected black at unflipped position, got G=%d", g)
	}
	if g := img.RGBAAt(0, 0).G; g != 0 {
		t.Errorf("expected black background, got G=%d", g)
	}
}

func TestFastestParticleIsFastColor(t *testing.T) {
	ps := []fluid.Particle{
		{X: 10, Y: 20},
		{X: 30, Y: 20, VX: 8, VY: 6},
	}
	r, img := render(t, 0, ps)

	if got := r.LastMaxSpeed(); got < 9.99 || got > 10.01 {
		t.Errorf("expected max speed 10, got %v", got)
	}

	slow := img.RGBAAt(10, 20)
	fast := img.RGBAAt(30, 20)
	if slow.G < 150 || slow.R > 20 {
		t.Errorf("expected green for the slow particle, got %+v", slow)
	}
	if fast.R < 150 || fast.B < 150 || fast.G > 20 {
		t.Errorf("expected magenta for the fast particle, got %+v", fast)
	}
}

func TestBlurPasses(t *testing.T) {
	ps := []fluid.Particle{{X: 20, Y: 20}}

	_, sharp := render(t, 0, ps)
	sharpCenter := sharp.RGBAAt(20, 20).G
	sharpOutside := sharp.RGBAAt(27, 20).G

	r, blurred := render(t, 2, ps)

	if sharpOutside != 0 {
		t.Fatalf("expected nothing drawn outside the disc, got G=%d", sharpOutside)
	}
	if blurred.RGBAAt(27, 20).G == 0 {
		t.Error("expected blur to spread light outside the disc")
	}
	if blurred.RGBAAt(20, 20).G > sharpCenter {
		t.Errorf("blur brightened the center: %d > %d", blurred.RGBAAt(20, 20).G, sharpCenter)
	}
	if r.LatestTarget() != 0 {
		t.Errorf("expected latest target 0 after 2 passes, got %d", r.LatestTarget())
	}
}

func TestLatestTargetParity(t *testing.T) {
	for passes := 0; passes < 4; passes++ {
		r, _ := render(t, passes, nil)
		if r.LatestTarget() != passes%2 {
			t.Errorf("passes=%d: expected latest %d, got %d", passes, passes%2, r.LatestTarget())
		}
	}
}

func TestEmptyFieldRendersClearColor(t *testing.T) {
	_, img := render(t, 1, nil)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			t.Fatalf("expected black frame, pixel %d is %v", i/4, img.Pix[i:i+4])
		}
	}
}

func TestNewRejectsEmptySurface(t *testing.T) {
	if _, err := New(0, 10, DefaultOptions()); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestSavePNG(t *testing.T) {
	_, img := render(t, 0, []fluid.Particle{{X: 5, Y: 5}})
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty png")
	}
}
