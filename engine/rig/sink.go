package rig

import "github.com/YannUFLL/HumanGL/engine/math"

// Sink receives one unit-cube draw per rigid segment. model maps the cube
// spanning [-0.5, 0.5]^3 into world space.
type Sink interface {
	DrawPart(part Part, model math.Mat4, color math.Color)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(part Part, model math.Mat4, color math.Color)

func (f SinkFunc) DrawPart(part Part, model math.Mat4, color math.Color) {
	f(part, model, color)
}

type Emission struct {
	Part  Part
	Model math.Mat4
	Color math.Color
}

// Recorder is a Sink that keeps every emission in order.
type Recorder struct {
	Emissions []Emission
}

func (r *Recorder) DrawPart(part Part, model math.Mat4, color math.Color) {
	r.Emissions = append(r.Emissions, Emission{Part: part, Model: model, Color: color})
}

func (r *Recorder) Reset() {
	r.Emissions = r.Emissions[:0]
}

// Find returns the first emission for part.
func (r *Recorder) Find(part Part) (Emission, bool) {
	for _, e := range r.Emissions {
		if e.Part == part {
			return e, true
		}
	}
	return Emission{}, false
}
