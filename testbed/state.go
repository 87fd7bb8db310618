package testbed

import (
	"fmt"

	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

// Action is a user command, independent of which front end produced it.
type Action uint8

const (
	ActionNone Action = iota
	ActionIdle
	ActionWalk
	ActionJump
	ActionTogglePause
	ActionArmsLonger
	ActionArmsShorter
	ActionLegsLonger
	ActionLegsShorter
	ActionLimbsThicker
	ActionLimbsThinner
	ActionReset
	ActionQuit
)

// Bindings maps keys to actions. Every front end translates its native key
// events to core key codes and looks them up here.
var Bindings = map[core.KeyCode]Action{
	core.KEY_1:      ActionIdle,
	core.KEY_2:      ActionWalk,
	core.KEY_3:      ActionJump,
	core.KEY_SPACE:  ActionTogglePause,
	core.KEY_Q:      ActionArmsLonger,
	core.KEY_W:      ActionArmsShorter,
	core.KEY_A:      ActionLegsLonger,
	core.KEY_S:      ActionLegsShorter,
	core.KEY_Z:      ActionLimbsThicker,
	core.KEY_X:      ActionLimbsThinner,
	core.KEY_R:      ActionReset,
	core.KEY_ESCAPE: ActionQuit,
}

// BindingOrder is the order keys are polled in each frame.
var BindingOrder = []core.KeyCode{
	core.KEY_1, core.KEY_2, core.KEY_3, core.KEY_SPACE,
	core.KEY_Q, core.KEY_W, core.KEY_A, core.KEY_S, core.KEY_Z, core.KEY_X,
	core.KEY_R, core.KEY_ESCAPE,
}

// State is everything the demo needs to draw one frame.
type State struct {
	Mode   rig.Mode
	Paused bool
	Params rig.Params
	Colors rig.Colors
	// Animation time in seconds.
	Time float64

	initial rig.Params
}

func NewState(cfg *config.Config) *State {
	params := cfg.Rig.Clamped()
	return &State{
		Mode:    cfg.Animation.Mode,
		Paused:  cfg.Animation.Paused,
		Params:  params,
		Colors:  cfg.Colors.Rig(),
		initial: params,
	}
}

// Advance moves animation time forward. Time keeps running while paused so
// that unpausing resumes from the current phase of the clock.
func (s *State) Advance(dt float64) {
	if dt > 0 {
		s.Time += dt
	}
}

// Apply performs a; it reports whether anything changed.
func (s *State) Apply(a Action) bool {
	before := *s
	switch a {
	case ActionIdle:
		s.Mode = rig.ModeIdle
	case ActionWalk:
		s.Mode = rig.ModeWalk
	case ActionJump:
		s.Mode = rig.ModeJump
	case ActionTogglePause:
		s.Paused = !s.Paused
	case ActionArmsLonger:
		s.Params.ResizeArms(rig.LengthStep)
	case ActionArmsShorter:
		s.Params.ResizeArms(-rig.LengthStep)
	case ActionLegsLonger:
		s.Params.ResizeLegs(rig.LengthStep)
	case ActionLegsShorter:
		s.Params.ResizeLegs(-rig.LengthStep)
	case ActionLimbsThicker:
		s.Params.ResizeLimbs(rig.RadiusStep)
	case ActionLimbsThinner:
		s.Params.ResizeLimbs(-rig.RadiusStep)
	case ActionReset:
		s.Params = s.initial
	default:
		return false
	}
	return before != *s
}

// Reconfigure adopts a reloaded configuration. The animation clock keeps
// running, and the new rig becomes what ActionReset returns to.
func (s *State) Reconfigure(cfg *config.Config) {
	s.Mode = cfg.Animation.Mode
	s.Paused = cfg.Animation.Paused
	s.Params = cfg.Rig.Clamped()
	s.Colors = cfg.Colors.Rig()
	s.initial = s.Params
}

// Pose evaluates the animator at the current time.
func (s *State) Pose() rig.JointPose {
	return rig.ComputePose(s.Time, s.Mode, s.Paused)
}

// Status is a short human readable summary for titles and overlays.
func (s *State) Status() string {
	paused := ""
	if s.Paused {
		paused = " (paused)"
	}
	return fmt.Sprintf("%s%s | arms %.2f legs %.2f limbs %.2f",
		s.Mode, paused, s.Params.UpperArmL, s.Params.ThighL, s.Params.ArmR)
}
