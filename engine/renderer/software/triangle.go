package software

import (
	stdmath "math"
)

// ScreenVertex is a vertex after the viewport transform: pixel coordinates
// plus NDC depth, where smaller is nearer.
type ScreenVertex struct {
	X, Y, Z float32
}

// RasterizeTriangle fills a flat coloured triangle with depth testing.
// Pixel centres are sampled at +0.5 and both windings are drawn.
func RasterizeTriangle(fb *FrameBuffer, v [3]ScreenVertex, r, g, b, a uint8) {
	x0, y0, z0 := float64(v[0].X), float64(v[0].Y), float64(v[0].Z)
	x1, y1, z1 := float64(v[1].X), float64(v[1].Y), float64(v[1].Z)
	x2, y2, z2 := float64(v[2].X), float64(v[2].Y), float64(v[2].Z)

	// Bounding box
	minX := int(stdmath.Floor(stdmath.Min(stdmath.Min(x0, x1), x2)))
	maxX := int(stdmath.Ceil(stdmath.Max(stdmath.Max(x0, x1), x2)))
	minY := int(stdmath.Floor(stdmath.Min(stdmath.Min(y0, y1), y2)))
	maxY := int(stdmath.Ceil(stdmath.Max(stdmath.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX > fb.Width-1 {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > fb.Height-1 {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-9 && det < 1e-9 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := float32(w0*z0 + w1*z1 + w2*z2)
			zIdx := rowOff + sx
			if z < -1 || z > 1 || z >= fb.Depth[zIdx] {
				continue
			}
			fb.Depth[zIdx] = z

			px := zIdx * 4
			fb.Color[px] = r
			fb.Color[px+1] = g
			fb.Color[px+2] = b
			fb.Color[px+3] = a
		}
	}
}
