package testbed

import "github.com/YannUFLL/HumanGL/engine/rig"

// StepDetector reports the frames where the figure puts a foot down: a walk
// knee straightening out, or a jump landing.
type StepDetector struct {
	prev rig.JointPose
	mode rig.Mode
	seen bool
}

func (d *StepDetector) Observe(mode rig.Mode, pose rig.JointPose) bool {
	if !d.seen || mode != d.mode {
		d.prev, d.mode, d.seen = pose, mode, true
		return false
	}
	var planted bool
	switch mode {
	case rig.ModeWalk:
		planted = d.prev.KneeFlex > 0 && pose.KneeFlex == 0
	case rig.ModeJump:
		planted = d.prev.Bounce > 0 && pose.Bounce == 0
	}
	d.prev = pose
	return planted
}
