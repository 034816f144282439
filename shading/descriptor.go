// Package shading describes the render contract independently of any
// graphics API: shader programs as versioned data, the point-sprite color
// rule, the blur kernel and the ping-pong target bookkeeping.
package shading

import (
	"fmt"
	"strings"
)

// GLSLVersion is the version directive every stage is compiled with.
const GLSLVersion = "330 core"

// StageKind identifies a programmable pipeline stage.
type StageKind int

const (
	StageVertex StageKind = iota
	StageFragment
)

func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(k))
	}
}

// Stage is one shader stage's source text.
type Stage struct {
	Kind   StageKind
	Source string
}

// Attribute is a vertex input bound to a fixed location.
type Attribute struct {
	Name       string
	Location   uint32
	Components int32
}

// Descriptor is a complete program: its stages plus the attribute and
// uniform names the host side is allowed to rely on.
type Descriptor struct {
	Name       string
	Version    string
	Stages     []Stage
	Attributes []Attribute
	Uniforms   []string
}

// Stage returns the source for the given kind.
func (d Descriptor) Stage(kind StageKind) (Stage, bool) {
	for _, s := range d.Stages {
		if s.Kind == kind {
			return s, true
		}
	}
	return Stage{}, false
}

// Validate checks that the descriptor has a vertex and a fragment stage and
// that every declared attribute and uniform name appears in the sources.
func (d Descriptor) Validate() error {
	vs, ok := d.Stage(StageVertex)
	if !ok {
		return fmt.Errorf("program %q: missing vertex stage", d.Name)
	}
	fs, ok := d.Stage(StageFragment)
	if !ok {
		return fmt.Errorf("program %q: missing fragment stage", d.Name)
	}

	for _, s := range d.Stages {
		if !strings.HasPrefix(strings.TrimSpace(s.Source), "#version "+d.Version) {
			return fmt.Errorf("program %q: %s stage is not #version %s", d.Name, s.Kind, d.Version)
		}
	}

	for _, a := range d.Attributes {
		if !strings.Contains(vs.Source, a.Name) {
			return fmt.Errorf("program %q: attribute %s not declared in vertex stage", d.Name, a.Name)
		}
	}
	for _, u := range d.Uniforms {
		if !strings.Contains(vs.Source, u) && !strings.Contains(fs.Source, u) {
			return fmt.Errorf("program %q: uniform %s not declared in any stage", d.Name, u)
		}
	}
	return nil
}

// Stride returns the interleaved vertex size in float32 components.
func (d Descriptor) Stride() int32 {
	var n int32
	for _, a := range d.Attributes {
		n += a.Components
	}
	return n
}

// Uniform names shared between the descriptors and the GL pipeline.
const (
	UniformProjection   = "uProjection"
	UniformParticleSize = "uParticleSize"
	UniformMaxVelocity  = "uMaxVelocity"
	UniformSlowColor    = "uSlowColor"
	UniformFastColor    = "uFastColor"
	UniformAlpha        = "uAlpha"
	UniformImage        = "image"
	UniformBlur         = "uBlur"
)

// Sprite returns the point-sprite program: one point per particle, colored
// by speed and masked to a disc.
func Sprite() Descriptor {
	return Descriptor{
		Name:    "sprite",
		Version: GLSLVersion,
		Stages: []Stage{
			{Kind: StageVertex, Source: spriteVertexSource},
			{Kind: StageFragment, Source: spriteFragmentSource},
		},
		Attributes: []Attribute{
			{Name: "aPosition", Location: 0, Components: 2},
			{Name: "aVelocity", Location: 1, Components: 2},
		},
		Uniforms: []string{
			UniformProjection,
			UniformParticleSize,
			UniformMaxVelocity,
			UniformSlowColor,
			UniformFastColor,
			UniformAlpha,
		},
	}
}

// Composite returns the fullscreen-quad program used both for blur passes
// (uBlur = 1) and for the final copy to the screen (uBlur = 0).
func Composite() Descriptor {
	return Descriptor{
		Name:    "composite",
		Version: GLSLVersion,
		Stages: []Stage{
			{Kind: StageVertex, Source: compositeVertexSource},
			{Kind: StageFragment, Source: compositeFragmentSource(DefaultKernel())},
		},
		Attributes: []Attribute{
			{Name: "aPos", Location: 0, Components: 2},
			{Name: "aTexCoord", Location: 1, Components: 2},
		},
		Uniforms: []string{UniformImage, UniformBlur},
	}
}

// Programs returns every program the pipeline builds.
func Programs() []Descriptor {
	return []Descriptor{Sprite(), Composite()}
}
