// Package preview renders the particle field in software. It draws the same
// frame as the GPU pipeline (sprites, blur passes, composite) into an
// image, for headless runs and tests.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/driftfield/fluid"
	"github.com/pthm-cable/driftfield/shading"
)

// Options configures a Renderer.
type Options struct {
	ParticleSize float64 // disc diameter in pixels
	BlurPasses   int
	SpeedEpsilon float32
	Palette      shading.Palette
	ClearColor   shading.RGB
	Kernel       shading.Kernel
}

// DefaultOptions matches the GPU pipeline defaults.
func DefaultOptions() Options {
	return Options{
		ParticleSize: 10,
		BlurPasses:   2,
		SpeedEpsilon: shading.DefaultSpeedEpsilon,
		Palette:      shading.DefaultPalette(),
		Kernel:       shading.DefaultKernel(),
	}
}

// Renderer draws frames with gg. Not safe for concurrent use.
type Renderer struct {
	width, height int
	opts          Options

	ctx     *gg.Context
	scratch *image.RGBA

	lastMaxSpeed float32
	lastTarget   int
}

// New creates a renderer for a width x height surface.
func New(width, height int, opts Options) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("preview: invalid surface size %dx%d", width, height)
	}
	if opts.SpeedEpsilon <= 0 {
		opts.SpeedEpsilon = shading.DefaultSpeedEpsilon
	}
	if opts.BlurPasses < 0 {
		opts.BlurPasses = 0
	}
	if len(opts.Kernel.Side) == 0 {
		opts.Kernel = shading.DefaultKernel()
	}
	return &Renderer{
		width:   width,
		height:  height,
		opts:    opts,
		ctx:     gg.NewContext(width, height),
		scratch: image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// RenderFrame draws particles and runs the blur passes. The returned image
// is valid until the next call.
func (r *Renderer) RenderFrame(particles []fluid.Particle) (*image.RGBA, error) {
	scene, err := r.drawSprites(particles)
	if err != nil {
		return nil, err
	}

	pp := shading.NewPingPong(scene, r.scratch)
	for i := 0; i < r.opts.BlurPasses; i++ {
		shading.BlurRGBA(pp.Write(), pp.Read(), r.opts.Kernel)
		pp.Swap()
	}
	r.lastTarget = pp.Latest()
	return pp.Read(), nil
}

func (r *Renderer) drawSprites(particles []fluid.Particle) (*image.RGBA, error) {
	c := r.opts.ClearColor
	r.ctx.ClearWithColor(gg.RGB(float64(c.R), float64(c.G), float64(c.B)))

	r.lastMaxSpeed = shading.MaxSpeed(particles, r.opts.SpeedEpsilon)
	radius := r.opts.ParticleSize / 2
	h := float64(r.height)

	for i := range particles {
		p := &particles[i]
		col := shading.SpriteColor(p.Speed(), r.lastMaxSpeed, r.opts.Palette)
		r.ctx.SetRGBA(float64(col.R), float64(col.G), float64(col.B), float64(col.A))
		// Field Y grows upward, image Y downward
		r.ctx.DrawCircle(float64(p.X), h-float64(p.Y), radius)
		if err := r.ctx.Fill(); err != nil {
			return nil, fmt.Errorf("filling particle %d: %w", i, err)
		}
	}

	img, ok := r.ctx.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("preview: unexpected image type %T", r.ctx.Image())
	}
	return img, nil
}

// SetBlurPasses changes the number of blur passes; negative means zero.
func (r *Renderer) SetBlurPasses(n int) {
	if n < 0 {
		n = 0
	}
	r.opts.BlurPasses = n
}

// BlurPasses returns the configured number of blur passes.
func (r *Renderer) BlurPasses() int { return r.opts.BlurPasses }

// LastMaxSpeed returns the normalisation speed used by the last frame.
func (r *Renderer) LastMaxSpeed() float32 { return r.lastMaxSpeed }

// LatestTarget returns which ping-pong image held the last frame, 0 for
// the scene and 1 for the scratch image.
func (r *Renderer) LatestTarget() int { return r.lastTarget }

// Close releases the drawing context.
func (r *Renderer) Close() error {
	return r.ctx.Close()
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
