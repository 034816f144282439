package renderer

import (
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// ReadPixels reads the default framebuffer back into an image with the
// origin at the top-left. Call it after RenderFrame and before the swap.
func (p *Pipeline) ReadPixels() *image.RGBA {
	w, h := int(p.width), int(p.height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, p.width, p.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	p.drainErrors("readback")

	// GL rows run bottom-up
	stride := img.Stride
	row := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return img
}
