package rig

import "github.com/YannUFLL/HumanGL/engine/math"

// Limits applied by callers that let users resize the figure at runtime.
// The assembler itself never clamps.
const (
	MinLength  float32 = 0.2
	MaxLength  float32 = 2.0
	MinRadius  float32 = 0.05
	MaxRadius  float32 = 0.6
	LengthStep float32 = 0.05
	RadiusStep float32 = 0.02
)

// Params holds the body dimensions of the humanoid, in world units.
// Lengths run along the segment's local Y axis; radii are the X/Z extent.
type Params struct {
	TorsoH    float32 `toml:"torso_height"`
	TorsoW    float32 `toml:"torso_width"`
	TorsoD    float32 `toml:"torso_depth"`
	HeadH     float32 `toml:"head_height"`
	UpperArmL float32 `toml:"upper_arm_length"`
	ForeArmL  float32 `toml:"forearm_length"`
	ArmR      float32 `toml:"arm_radius"`
	ThighL    float32 `toml:"thigh_length"`
	ShinL     float32 `toml:"shin_length"`
	LegR      float32 `toml:"leg_radius"`
}

func DefaultParams() Params {
	return Params{
		TorsoH:    1.4,
		TorsoW:    0.7,
		TorsoD:    0.4,
		HeadH:     0.55,
		UpperArmL: 0.6,
		ForeArmL:  0.6,
		ArmR:      0.20,
		ThighL:    0.7,
		ShinL:     0.7,
		LegR:      0.20,
	}
}

// ResizeArms changes both arm segment lengths by delta within [MinLength, MaxLength].
func (p *Params) ResizeArms(delta float32) {
	p.UpperArmL = math.Step(p.UpperArmL, delta, MinLength, MaxLength)
	p.ForeArmL = math.Step(p.ForeArmL, delta, MinLength, MaxLength)
}

// ResizeLegs changes both leg segment lengths by delta within [MinLength, MaxLength].
func (p *Params) ResizeLegs(delta float32) {
	p.ThighL = math.Step(p.ThighL, delta, MinLength, MaxLength)
	p.ShinL = math.Step(p.ShinL, delta, MinLength, MaxLength)
}

// ResizeLimbs changes arm and leg radius by delta within [MinRadius, MaxRadius].
func (p *Params) ResizeLimbs(delta float32) {
	p.ArmR = math.Step(p.ArmR, delta, MinRadius, MaxRadius)
	p.LegR = math.Step(p.LegR, delta, MinRadius, MaxRadius)
}

// Clamped returns a copy with the limb values forced into their runtime ranges.
// Torso and head dimensions are only required to be positive.
func (p Params) Clamped() Params {
	p.UpperArmL = math.Clamp(p.UpperArmL, MinLength, MaxLength)
	p.ForeArmL = math.Clamp(p.ForeArmL, MinLength, MaxLength)
	p.ThighL = math.Clamp(p.ThighL, MinLength, MaxLength)
	p.ShinL = math.Clamp(p.ShinL, MinLength, MaxLength)
	p.ArmR = math.Clamp(p.ArmR, MinRadius, MaxRadius)
	p.LegR = math.Clamp(p.LegR, MinRadius, MaxRadius)

	d := DefaultParams()
	if p.TorsoH <= 0 {
		p.TorsoH = d.TorsoH
	}
	if p.TorsoW <= 0 {
		p.TorsoW = d.TorsoW
	}
	if p.TorsoD <= 0 {
		p.TorsoD = d.TorsoD
	}
	if p.HeadH <= 0 {
		p.HeadH = d.HeadH
	}
	return p
}

// Colors assigns one colour per body region.
type Colors struct {
	Head  math.Color
	Torso math.Color
	Arm   math.Color
	Leg   math.Color
}

func DefaultColors() Colors {
	return Colors{
		Head:  math.NewColorRGB(0.95, 0.80, 0.65),
		Torso: math.NewColorRGB(0.20, 0.45, 0.85),
		Arm:   math.NewColorRGB(0.85, 0.70, 0.55),
		Leg:   math.NewColorRGB(0.25, 0.25, 0.35),
	}
}

// Slot picks the region colour for a body slot.
func (c Colors) Slot(s Slot) math.Color {
	switch s {
	case SlotHead:
		return c.Head
	case SlotTorso:
		return c.Torso
	case SlotArm:
		return c.Arm
	default:
		return c.Leg
	}
}
