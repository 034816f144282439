// Package renderer draws a particle field through an OpenGL 3.3 pipeline:
// point sprites into an offscreen target, ping-pong blur passes, then a
// fullscreen composite onto the default framebuffer.
//
// All methods must be called from the thread that owns the GL context.
package renderer

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/pthm-cable/driftfield/fluid"
	"github.com/pthm-cable/driftfield/shading"
)

const particleStride = int32(unsafe.Sizeof(fluid.Particle{}))

// Options configures a Pipeline.
type Options struct {
	ParticleSize float32 // point sprite size in pixels
	BlurPasses   int
	SpeedEpsilon float32
	Palette      shading.Palette
	ClearColor   shading.RGB
}

// DefaultOptions returns the stock look: 10px sprites, two blur passes.
func DefaultOptions() Options {
	return Options{
		ParticleSize: 10,
		BlurPasses:   2,
		SpeedEpsilon: shading.DefaultSpeedEpsilon,
		Palette:      shading.DefaultPalette(),
	}
}

// Pipeline owns every GL object used to draw a frame. They are created
// together in New and released together in Unload.
type Pipeline struct {
	width, height int32
	opts          Options

	sprite    *program
	composite *program

	targets *shading.PingPong[colorTarget]

	particleVAO, particleVBO uint32
	quadVAO, quadVBO         uint32

	projection   [16]float32
	lastMaxSpeed float32
	frames       uint64
	glErrors     uint64
}

// New loads GL entry points for the current context and builds the
// pipeline. Any failure is fatal for the caller; resources created before
// the failure are released.
func New(width, height int, opts Options) (*Pipeline, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer: invalid surface size %dx%d", width, height)
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("loading OpenGL functions: %w", err)
	}
	slog.Info("opengl context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	if opts.SpeedEpsilon <= 0 {
		opts.SpeedEpsilon = shading.DefaultSpeedEpsilon
	}
	if opts.BlurPasses < 0 {
		opts.BlurPasses = 0
	}

	p := &Pipeline{
		width:      int32(width),
		height:     int32(height),
		opts:       opts,
		projection: shading.Ortho(float32(width), float32(height)),
	}
	if err := p.init(); err != nil {
		p.Unload()
		return nil, err
	}
	p.drainErrors("init")

	slog.Info("pipeline ready",
		"width", width,
		"height", height,
		"blur_passes", opts.BlurPasses,
		"particle_size", opts.ParticleSize,
	)
	return p, nil
}

func (p *Pipeline) init() error {
	var err error
	if p.sprite, err = buildProgram(shading.Sprite()); err != nil {
		return err
	}
	if p.composite, err = buildProgram(shading.Composite()); err != nil {
		return err
	}

	a, err := newColorTarget(p.width, p.height)
	if err != nil {
		return fmt.Errorf("target A: %w", err)
	}
	b, err := newColorTarget(p.width, p.height)
	if err != nil {
		a.delete()
		return fmt.Errorf("target B: %w", err)
	}
	p.targets = shading.NewPingPong(a, b)

	p.initParticleBuffer()
	p.initFullscreenQuad()
	return nil
}

// initParticleBuffer creates the dynamic vertex buffer. It starts empty and
// is resized by every upload.
func (p *Pipeline) initParticleBuffer() {
	gl.GenVertexArrays(1, &p.particleVAO)
	gl.GenBuffers(1, &p.particleVBO)

	gl.BindVertexArray(p.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.particleVBO)
	setAttributes(shading.Sprite(), particleStride)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (p *Pipeline) initFullscreenQuad() {
	gl.GenVertexArrays(1, &p.quadVAO)
	gl.GenBuffers(1, &p.quadVBO)

	gl.BindVertexArray(p.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.quadVBO)
	quad := shading.FullscreenQuad
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STATIC_DRAW)
	setAttributes(shading.Composite(), 4*4)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// setAttributes points each descriptor attribute at consecutive float32
// components of an interleaved vertex.
func setAttributes(d shading.Descriptor, stride int32) {
	offset := 0
	for _, a := range d.Attributes {
		gl.VertexAttribPointer(a.Location, a.Components, gl.FLOAT, false, stride, gl.PtrOffset(offset))
		gl.EnableVertexAttribArray(a.Location)
		offset += int(a.Components) * 4
	}
}

// RenderFrame draws the particles: sprites into target A, the configured
// number of blur passes, then the latest target onto the default
// framebuffer. Presenting is left to the caller and must follow directly.
// GL bindings are not restored afterwards.
func (p *Pipeline) RenderFrame(particles []fluid.Particle) {
	p.frames++
	p.targets.Reset()

	gl.Viewport(0, 0, p.width, p.height)

	p.drawSprites(particles)
	p.drainErrors("sprites")

	p.blur()
	p.drainErrors("blur")

	p.present()
	p.drainErrors("composite")
}

func (p *Pipeline) drawSprites(particles []fluid.Particle) {
	c := p.opts.ClearColor
	gl.BindFramebuffer(gl.FRAMEBUFFER, p.targets.Read().fbo)
	gl.ClearColor(c.R, c.G, c.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// Empty frames report the epsilon floor rather than a stale speed
	p.lastMaxSpeed = shading.MaxSpeed(particles, p.opts.SpeedEpsilon)
	if len(particles) == 0 {
		return
	}

	pal := p.opts.Palette

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	sp := p.sprite
	gl.UseProgram(sp.id)
	gl.UniformMatrix4fv(sp.loc(shading.UniformProjection), 1, false, &p.projection[0])
	gl.Uniform1f(sp.loc(shading.UniformParticleSize), p.opts.ParticleSize)
	gl.Uniform1f(sp.loc(shading.UniformMaxVelocity), p.lastMaxSpeed)
	gl.Uniform3f(sp.loc(shading.UniformSlowColor), pal.Slow.R, pal.Slow.G, pal.Slow.B)
	gl.Uniform3f(sp.loc(shading.UniformFastColor), pal.Fast.R, pal.Fast.G, pal.Fast.B)
	gl.Uniform1f(sp.loc(shading.UniformAlpha), pal.Alpha)

	gl.BindVertexArray(p.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.particleVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(particles)*int(particleStride), gl.Ptr(&particles[0]), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(particles)))
}

// blur runs the ping-pong passes. Each pass samples the latest image and
// overwrites the other target, so blending is off.
func (p *Pipeline) blur() {
	gl.Disable(gl.BLEND)

	cp := p.composite
	gl.UseProgram(cp.id)
	gl.Uniform1i(cp.loc(shading.UniformImage), 0)
	gl.Uniform1f(cp.loc(shading.UniformBlur), 1)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(p.quadVAO)

	for i := 0; i < p.opts.BlurPasses; i++ {
		src, dst := p.targets.Read(), p.targets.Write()
		gl.BindFramebuffer(gl.FRAMEBUFFER, dst.fbo)
		gl.BindTexture(gl.TEXTURE_2D, src.texture)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, shading.QuadVertexCount)
		p.targets.Swap()
	}
}

// present copies the latest target onto the default framebuffer.
func (p *Pipeline) present() {
	c := p.opts.ClearColor
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ClearColor(c.R, c.G, c.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	cp := p.composite
	gl.UseProgram(cp.id)
	gl.Uniform1i(cp.loc(shading.UniformImage), 0)
	gl.Uniform1f(cp.loc(shading.UniformBlur), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.targets.Read().texture)
	gl.BindVertexArray(p.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, shading.QuadVertexCount)

	// Leave the sprite blend state on for overlays drawn before present
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// SetBlurPasses changes the number of blur passes; negative means zero.
func (p *Pipeline) SetBlurPasses(n int) {
	if n < 0 {
		n = 0
	}
	p.opts.BlurPasses = n
}

// BlurPasses returns the configured number of blur passes.
func (p *Pipeline) BlurPasses() int { return p.opts.BlurPasses }

// LastMaxSpeed returns the normalisation speed used by the last frame.
func (p *Pipeline) LastMaxSpeed() float32 { return p.lastMaxSpeed }

// LatestTarget returns the ping-pong index that held the last frame.
func (p *Pipeline) LatestTarget() int { return p.targets.Latest() }

// Frames returns the number of frames rendered.
func (p *Pipeline) Frames() uint64 { return p.frames }

// GLErrors returns the number of GL errors seen since New.
func (p *Pipeline) GLErrors() uint64 { return p.glErrors }

// Size returns the surface size in pixels.
func (p *Pipeline) Size() (int, int) { return int(p.width), int(p.height) }

// Unload releases all GL objects.
func (p *Pipeline) Unload() {
	p.sprite.delete()
	p.composite.delete()
	if p.targets != nil {
		ts := p.targets.Targets()
		ts[0].delete()
		ts[1].delete()
		p.targets = nil
	}
	if p.particleVBO != 0 {
		gl.DeleteBuffers(1, &p.particleVBO)
		p.particleVBO = 0
	}
	if p.particleVAO != 0 {
		gl.DeleteVertexArrays(1, &p.particleVAO)
		p.particleVAO = 0
	}
	if p.quadVBO != 0 {
		gl.DeleteBuffers(1, &p.quadVBO)
		p.quadVBO = 0
	}
	if p.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &p.quadVAO)
		p.quadVAO = 0
	}
}
