package renderer

import "github.com/YannUFLL/HumanGL/engine/math"

// Light is a single directional light given in view space, so the figure is
// lit the same way from every orbit angle.
type Light struct {
	Direction math.Vec3
	Ambient   float32
}

func DefaultLight() Light {
	return Light{
		Direction: math.Vec3{0.35, 0.6, 0.7}.Normalize(),
		Ambient:   0.35,
	}
}

// Intensity returns the shade factor for a view-space face normal. Lambert
// term uses abs for double-sided faces, since the cube winding is mixed.
func (l Light) Intensity(normal math.Vec3) float32 {
	ndl := math.Abs(normal.Dot(l.Direction))
	return l.Ambient + (1-l.Ambient)*ndl
}

// Shade applies Intensity to a colour.
func (l Light) Shade(c math.Color, normal math.Vec3) math.Color {
	return c.Scale(l.Intensity(normal))
}
