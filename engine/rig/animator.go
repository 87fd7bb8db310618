package rig

import (
	"fmt"
	m "math"
	"strings"

	"github.com/YannUFLL/HumanGL/engine/core"
)

type Mode uint8

const (
	ModeIdle Mode = iota
	ModeWalk
	ModeJump
)

func (md Mode) String() string {
	switch md {
	case ModeIdle:
		return "idle"
	case ModeWalk:
		return "walk"
	case ModeJump:
		return "jump"
	default:
		return fmt.Sprintf("mode(%d)", uint8(md))
	}
}

// ParseMode accepts the names returned by String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "idle":
		return ModeIdle, nil
	case "walk":
		return ModeWalk, nil
	case "jump":
		return ModeJump, nil
	}
	return ModeIdle, fmt.Errorf("%w: %q", core.ErrUnknownMode, s)
}

func (md Mode) MarshalText() ([]byte, error) {
	return []byte(md.String()), nil
}

func (md *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*md = parsed
	return nil
}

// JointPose is the set of joint angles (radians) and root offset for one frame.
type JointPose struct {
	WalkSwing float32
	ElbowFlex float32
	HipSwing  float32
	KneeFlex  float32
	Bounce    float32
}

// ComputePose evaluates the animation driver for mode at time t seconds.
// A paused animation is evaluated at t = 0. Unknown modes behave as idle.
func ComputePose(t float64, mode Mode, paused bool) JointPose {
	if paused {
		t = 0
	}

	var p JointPose
	switch mode {
	case ModeWalk:
		s := m.Sin(2 * t)
		p.WalkSwing = float32(s * 0.6)
		p.ElbowFlex = float32(m.Sin(2*t+1.57) * 0.4)
		p.HipSwing = p.WalkSwing
		p.KneeFlex = float32(m.Max(0, -s) * 0.8)
		p.Bounce = float32(m.Abs(s) * 0.05)
	case ModeJump:
		s := m.Sin(3 * t)
		p.HipSwing = float32(m.Max(0, -s) * 0.5)
		p.KneeFlex = float32(m.Max(0, -s) * 1.2)
		p.ElbowFlex = float32(0.2 * s)
		p.Bounce = float32(m.Max(0, s) * 0.25)
	}
	return p
}

// SwayAngle is the torso yaw (radians, about +Y) applied once at the root,
// independent of the animation mode. It freezes with the rest of the pose.
func SwayAngle(t float64, paused bool) float32 {
	if paused {
		t = 0
	}
	return float32(0.2 * m.Sin(0.7*t))
}
