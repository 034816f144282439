package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/pthm-cable/driftfield/shading"
)

var (
	// ErrShaderCompile wraps a stage compile failure and its info log.
	ErrShaderCompile = errors.New("shader compilation failed")
	// ErrProgramLink wraps a program link failure and its info log.
	ErrProgramLink = errors.New("shader program linking failed")
)

// program is a linked GL program with its uniform locations resolved from
// the descriptor.
type program struct {
	id       uint32
	name     string
	uniforms map[string]int32
}

// buildProgram compiles and links every stage of d. The returned error
// carries the driver's compile or link log.
func buildProgram(d shading.Descriptor) (*program, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	shaders := make([]uint32, 0, len(d.Stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, st := range d.Stages {
		s, err := compileShader(st)
		if err != nil {
			return nil, fmt.Errorf("program %q: %w", d.Name, err)
		}
		shaders = append(shaders, s)
	}

	id := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(id, s)
	}
	for _, a := range d.Attributes {
		gl.BindAttribLocation(id, a.Location, gl.Str(a.Name+"\x00"))
	}
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("program %q: %w: %s", d.Name, ErrProgramLink, strings.TrimRight(log, "\x00"))
	}

	p := &program{id: id, name: d.Name, uniforms: make(map[string]int32, len(d.Uniforms))}
	for _, u := range d.Uniforms {
		p.uniforms[u] = gl.GetUniformLocation(id, gl.Str(u+"\x00"))
	}
	return p, nil
}

func compileShader(st shading.Stage) (uint32, error) {
	var kind uint32
	switch st.Kind {
	case shading.StageVertex:
		kind = gl.VERTEX_SHADER
	case shading.StageFragment:
		kind = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("%w: unsupported stage %s", ErrShaderCompile, st.Kind)
	}

	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(st.Source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s stage: %w: %s", st.Kind, ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// loc returns the location of a uniform declared in the descriptor.
// Uniforms the driver optimised away report -1, which GL ignores.
func (p *program) loc(name string) int32 {
	if l, ok := p.uniforms[name]; ok {
		return l
	}
	return -1
}

func (p *program) delete() {
	if p != nil && p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
