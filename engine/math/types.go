package math

import "github.com/go-gl/mathgl/mgl32"

// Vec3 and Mat4 are the mathgl column-major types (OpenGL memory layout),
// aliased so callers can use them without importing mgl32 directly.
type (
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
	Mat4 = mgl32.Mat4
)

/** @brief An RGBA colour with components in [0, 1]. */
type Color struct {
	R, G, B, A float32
}

func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewColorRGB returns an opaque colour.
func NewColorRGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Vec4 returns the colour as a shader-friendly vector.
func (c Color) Vec4() Vec4 {
	return Vec4{c.R, c.G, c.B, c.A}
}

// Scale multiplies the RGB channels by s, leaving alpha alone.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// RGBA8 quantises the colour to 8 bits per channel, clamping out of range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return unitToByte(c.R), unitToByte(c.G), unitToByte(c.B), unitToByte(c.A)
}

func unitToByte(v float32) uint8 {
	return uint8(Clamp(v, 0, 1)*255 + 0.5)
}
