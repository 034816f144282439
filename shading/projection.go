package shading

import "github.com/go-gl/mathgl/mgl32"

// Ortho maps pixel coordinates with the origin at the bottom-left onto
// clip space, matching the field's Y-up convention.
func Ortho(width, height float32) mgl32.Mat4 {
	return mgl32.Ortho(0, width, 0, height, -1, 1)
}

// FullscreenQuad is a triangle strip covering clip space, interleaved as
// position (x, y) then texture coordinate (u, v).
var FullscreenQuad = [16]float32{
	-1, 1, 0, 1, // top-left
	-1, -1, 0, 0, // bottom-left
	1, 1, 1, 1, // top-right
	1, -1, 1, 0, // bottom-right
}

// QuadVertexCount is the number of strip vertices in FullscreenQuad.
const QuadVertexCount = 4
