package testbed

import (
	"testing"

	"github.com/YannUFLL/HumanGL/engine/rig"
)

func countSteps(mode rig.Mode, seconds, dt float64) int {
	var d StepDetector
	n := 0
	for t := 0.0; t < seconds; t += dt {
		if d.Observe(mode, rig.ComputePose(t, mode, false)) {
			n++
		}
	}
	return n
}

func TestStepDetectorWalk(t *testing.T) {
	// sin(2t) completes a period every pi seconds; the knee straightens once per period.
	if n := countSteps(rig.ModeWalk, 10, 1.0/60); n != 3 {
		t.Errorf("walk planted %d times in 10s, want 3", n)
	}
}

func TestStepDetectorJump(t *testing.T) {
	// Landing once per 2pi/3 seconds.
	if n := countSteps(rig.ModeJump, 10, 1.0/60); n != 5 {
		t.Errorf("jump landed %d times in 10s, want 5", n)
	}
}

func TestStepDetectorIdleAndModeChange(t *testing.T) {
	if n := countSteps(rig.ModeIdle, 10, 1.0/60); n != 0 {
		t.Errorf("idle planted %d times", n)
	}

	var d StepDetector
	d.Observe(rig.ModeWalk, rig.JointPose{KneeFlex: 0.5})
	if d.Observe(rig.ModeJump, rig.JointPose{}) {
		t.Error("a mode switch counted as a step")
	}
}
