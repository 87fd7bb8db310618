package software

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales src into dst with CatmullRom filtering, allocating dst
// when it is nil or the wrong size. Frames are opaque, so no premultiply
// pass is needed.
func Downsample(dst, src *image.RGBA, width, height int) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != width || dst.Bounds().Dy() != height {
		dst = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
