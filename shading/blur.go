package shading

import (
	"image"
	"math"
)

// Kernel is a cross-shaped Gaussian blur: a center weight plus one weight
// per tap distance, applied in +x, -x, +y and -y each scaled by AxisShare.
type Kernel struct {
	Center    float64
	Side      []float64
	AxisShare float64
}

// DefaultKernel returns the 9-tap-per-axis Gaussian used by the pipeline.
func DefaultKernel() Kernel {
	return Kernel{
		Center:    0.227027,
		Side:      []float64{0.1945946, 0.1216216, 0.054054, 0.016216},
		AxisShare: 0.5,
	}
}

// Sum returns the total weight applied to a constant image. It must not
// exceed 1 or every pass brightens the frame.
func (k Kernel) Sum() float64 {
	s := k.Center
	for _, w := range k.Side {
		s += 4 * w * k.AxisShare
	}
	return s
}

// BlurRGBA applies one kernel pass from src into dst. Samples past the
// edges are clamped to the border, matching CLAMP_TO_EDGE textures, and
// every channel is clamped to [0,1] (0..255).
func BlurRGBA(dst, src *image.RGBA, k Kernel) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	at := func(x, y int) []uint8 {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
		return src.Pix[i : i+4 : i+4]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float64
			add := func(px []uint8, wt float64) {
				acc[0] += float64(px[0]) * wt
				acc[1] += float64(px[1]) * wt
				acc[2] += float64(px[2]) * wt
				acc[3] += float64(px[3]) * wt
			}

			add(at(x, y), k.Center)
			for i, sw := range k.Side {
				d := i + 1
				wt := sw * k.AxisShare
				add(at(x+d, y), wt)
				add(at(x-d, y), wt)
				add(at(x, y+d), wt)
				add(at(x, y-d), wt)
			}

			o := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			for c := 0; c < 4; c++ {
				dst.Pix[o+c] = uint8(math.Round(clampFloat(acc[c], 0, 255)))
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
