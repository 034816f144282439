package renderer

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// maxLoggedErrors caps GL error logging so a persistently broken frame
// does not flood the log.
const maxLoggedErrors = 64

// drainErrors logs every pending GL error for the given frame stage and
// returns how many were pending. Errors are never fatal; the frame is drawn
// as well as the driver manages.
func (p *Pipeline) drainErrors(stage string) int {
	n := 0
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return n
		}
		n++
		p.glErrors++
		if p.glErrors <= maxLoggedErrors {
			slog.Warn("gl error",
				"stage", stage,
				"code", fmt.Sprintf("0x%X", code),
				"name", glErrorName(code),
				"frame", p.frames,
			)
		}
		// GL_CONTEXT_LOST and friends can report forever
		if n >= 16 {
			return n
		}
	}
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return "UNKNOWN"
	}
}
