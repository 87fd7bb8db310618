package software

import (
	"image"
	stdmath "math"

	"github.com/YannUFLL/HumanGL/engine/math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float32 // NDC depth per pixel, len = W*H, cleared to +inf
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float32, w*h),
	}
	fb.Clear(math.Color{})
	return fb
}

// Clear fills colour with c and resets depth.
func (fb *FrameBuffer) Clear(c math.Color) {
	r, g, b, a := c.RGBA8()
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = r
		fb.Color[i+1] = g
		fb.Color[i+2] = b
		fb.Color[i+3] = a
	}
	inf := float32(stdmath.Inf(1))
	for i := range fb.Depth {
		fb.Depth[i] = inf
	}
}

// Image wraps the colour buffer without copying. It aliases the buffer and
// changes with the next frame.
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}
