package rig

import (
	m "math"
	"testing"

	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func center(e Emission) math.Vec3 {
	return e.Model.Col(3).Vec3()
}

func mustFind(t *testing.T, r *Recorder, p Part) Emission {
	t.Helper()
	e, ok := r.Find(p)
	if !ok {
		t.Fatalf("no emission for %s", p)
	}
	return e
}

func TestAssembleEmitsEverySegmentInOrder(t *testing.T) {
	var r Recorder
	Assemble(math.NewTransformStack(), DefaultParams(), DefaultColors(), JointPose{}, 0, &r)

	want := []Part{
		PartTorso, PartHead,
		PartRightUpperArm, PartRightForearm,
		PartLeftUpperArm, PartLeftForearm,
		PartRightThigh, PartRightShin,
		PartLeftThigh, PartLeftShin,
	}
	if len(r.Emissions) != len(want) {
		t.Fatalf("got %d emissions, want %d", len(r.Emissions), len(want))
	}
	for i, p := range want {
		if r.Emissions[i].Part != p {
			t.Errorf("emission %d = %s, want %s", i, r.Emissions[i].Part, p)
		}
	}
	if n := Humanoid().Count(); n != int(PartCount) {
		t.Errorf("humanoid has %d segments, want %d", n, PartCount)
	}
}

func TestAssembleKeepsStackBalanced(t *testing.T) {
	s := math.NewTransformStack()
	s.Translate(math.Vec3{1, 2, 3})
	s.Push()
	s.Push()
	before := s.Top()

	pose := ComputePose(1.1, ModeWalk, false)
	Assemble(s, DefaultParams(), DefaultColors(), pose, SwayAngle(1.1, false), &Recorder{})

	if s.Depth() != 3 {
		t.Fatalf("depth = %d, want 3", s.Depth())
	}
	if s.Top() != before {
		t.Fatalf("top frame changed by assembly")
	}
}

func TestAssembleBottomFrameStaysIdentity(t *testing.T) {
	s := math.NewTransformStack()
	Assemble(s, DefaultParams(), DefaultColors(), ComputePose(0.7, ModeJump, false), 0.1, &Recorder{})
	if s.Depth() != 1 || s.Top() != mgl32.Ident4() {
		t.Fatalf("bottom frame after assembly: depth %d top %v", s.Depth(), s.Top())
	}
}

func TestRestPose(t *testing.T) {
	var r Recorder
	p := DefaultParams()
	Assemble(math.NewTransformStack(), p, DefaultColors(), JointPose{}, 0, &r)

	torso := mustFind(t, &r, PartTorso)
	if !torso.Model.ApproxEqualThreshold(mgl32.Scale3D(p.TorsoW, p.TorsoH, p.TorsoD), eps) {
		t.Fatalf("torso model = %v", torso.Model)
	}

	tests := []struct {
		part Part
		want math.Vec3
	}{
		{PartHead, math.Vec3{0, 0.975, 0}},
		{PartRightUpperArm, math.Vec3{0.55, 0.19, 0}},
		{PartLeftUpperArm, math.Vec3{-0.55, 0.19, 0}},
		{PartRightForearm, math.Vec3{0.55, -0.41, 0}},
		{PartRightThigh, math.Vec3{0.175, -1.05, 0}},
		{PartLeftShin, math.Vec3{-0.175, -1.75, 0}},
	}
	for _, tt := range tests {
		got := center(mustFind(t, &r, tt.part))
		if !got.ApproxEqualThreshold(tt.want, eps) {
			t.Errorf("%s centre = %v, want %v", tt.part, got, tt.want)
		}
	}
}

func TestSegmentScaleDoesNotLeakToChildren(t *testing.T) {
	var r Recorder
	p := DefaultParams()
	Assemble(math.NewTransformStack(), p, DefaultColors(), JointPose{}, 0, &r)

	head := mustFind(t, &r, PartHead)
	sx, sy, sz := mgl32.Extract3DScale(head.Model)
	if !near(sx, p.HeadH*0.8, eps) || !near(sy, p.HeadH, eps) || !near(sz, p.HeadH*0.8, eps) {
		t.Fatalf("head scale = %v %v %v", sx, sy, sz)
	}

	fore := mustFind(t, &r, PartRightForearm)
	sx, sy, _ = mgl32.Extract3DScale(fore.Model)
	if !near(sx, p.ArmR*0.95, eps) || !near(sy, p.ForeArmL, eps) {
		t.Fatalf("forearm scale = %v %v", sx, sy)
	}
}

func TestWalkAtZeroForearm(t *testing.T) {
	var r Recorder
	p := DefaultParams()
	pose := DrawFrame(math.NewTransformStack(), p, DefaultColors(), ModeWalk, false, 0, &r)

	e := float64(pose.ElbowFlex)
	if m.Abs(e-0.4) > 1e-4 {
		t.Fatalf("elbow = %v, want ~0.4", e)
	}

	shoulder := math.Vec3{p.TorsoW*0.5 + p.ArmR, p.TorsoH * 0.35, 0}
	want := shoulder.Add(math.Vec3{
		0,
		-p.UpperArmL - float32(m.Cos(e))*p.ForeArmL*0.5,
		-float32(m.Sin(e)) * p.ForeArmL * 0.5,
	})
	fore := mustFind(t, &r, PartRightForearm)
	if got := center(fore); !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("forearm centre = %v, want %v", got, want)
	}

	// The segment's long axis is the rotated local Y.
	axis := fore.Model.Col(1).Vec3()
	angle := m.Atan2(float64(axis[2]), float64(axis[1]))
	if m.Abs(angle-e) > 1e-4 {
		t.Fatalf("forearm rotation = %v rad, want %v", angle, e)
	}

	upper := mustFind(t, &r, PartRightUpperArm)
	if got, want := center(upper), shoulder.Add(math.Vec3{0, -p.UpperArmL * 0.5, 0}); !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("upper arm centre = %v, want %v", got, want)
	}
}

func TestShoulderAndHipMirror(t *testing.T) {
	var r Recorder
	pose := JointPose{WalkSwing: 0.5, ElbowFlex: 0.3, HipSwing: 0.4, KneeFlex: 0.2}
	Assemble(math.NewTransformStack(), DefaultParams(), DefaultColors(), pose, 0, &r)

	pairs := [][2]Part{
		{PartRightUpperArm, PartLeftUpperArm},
		{PartRightThigh, PartLeftThigh},
	}
	for _, pr := range pairs {
		rc := center(mustFind(t, &r, pr[0]))
		lc := center(mustFind(t, &r, pr[1]))
		mirrored := math.Vec3{-lc[0], lc[1], -lc[2]}
		if !rc.ApproxEqualThreshold(mirrored, eps) {
			t.Errorf("%s centre %v does not mirror %s centre %v", pr[0], rc, pr[1], lc)
		}
		if near(rc[2], 0, eps) {
			t.Errorf("%s did not swing out of the XY plane", pr[0])
		}
	}
}

func TestKneesFlexTogetherElbowsMirror(t *testing.T) {
	var r Recorder
	// No shoulder or hip swing, so each forearm and shin sits directly under
	// its pivot and its z offset comes from the elbow or knee alone.
	pose := JointPose{ElbowFlex: 0.3, KneeFlex: 0.5}
	Assemble(math.NewTransformStack(), DefaultParams(), DefaultColors(), pose, 0, &r)

	rs := center(mustFind(t, &r, PartRightShin))
	ls := center(mustFind(t, &r, PartLeftShin))
	if near(rs[2], 0, eps) || near(ls[2], 0, eps) {
		t.Fatalf("shins did not flex: right z %v, left z %v", rs[2], ls[2])
	}
	if (rs[2] > 0) != (ls[2] > 0) || !near(rs[2], ls[2], eps) {
		t.Errorf("knees flex in different directions: right z %v, left z %v", rs[2], ls[2])
	}

	rf := center(mustFind(t, &r, PartRightForearm))
	lf := center(mustFind(t, &r, PartLeftForearm))
	if near(rf[2], 0, eps) {
		t.Fatalf("forearms did not flex: right z %v", rf[2])
	}
	if !near(rf[2], -lf[2], eps) {
		t.Errorf("elbows do not mirror: right z %v, left z %v", rf[2], lf[2])
	}
}

func TestBounceAndParentFrame(t *testing.T) {
	var r Recorder
	s := math.NewTransformStack()
	s.Translate(math.Vec3{10, 0, 0})
	Assemble(s, DefaultParams(), DefaultColors(), JointPose{Bounce: 0.05}, 0, &r)

	got := center(mustFind(t, &r, PartTorso))
	if want := (math.Vec3{10, 0.05, 0}); !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("torso centre = %v, want %v", got, want)
	}
}

func TestSwayRotatesWholeFigure(t *testing.T) {
	var r Recorder
	sway := float32(0.2)
	Assemble(math.NewTransformStack(), DefaultParams(), DefaultColors(), JointPose{}, sway, &r)

	got := center(mustFind(t, &r, PartRightUpperArm))
	rot := mgl32.HomogRotate3D(sway, math.Vec3{0, 1, 0})
	want := rot.Mul4x1(math.Vec4{0.55, 0.19, 0, 1}).Vec3()
	if !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("swayed arm centre = %v, want %v", got, want)
	}
}

func TestPausedFramesAreIdentical(t *testing.T) {
	var a, b Recorder
	DrawFrame(math.NewTransformStack(), DefaultParams(), DefaultColors(), ModeWalk, true, 1.0, &a)
	DrawFrame(math.NewTransformStack(), DefaultParams(), DefaultColors(), ModeWalk, true, 50.0, &b)

	if len(a.Emissions) != len(b.Emissions) {
		t.Fatalf("emission counts differ: %d vs %d", len(a.Emissions), len(b.Emissions))
	}
	for i := range a.Emissions {
		if a.Emissions[i] != b.Emissions[i] {
			t.Fatalf("emission %d differs between paused frames", i)
		}
	}
}

func TestEmissionColors(t *testing.T) {
	var r Recorder
	c := DefaultColors()
	Assemble(math.NewTransformStack(), DefaultParams(), c, JointPose{}, 0, &r)

	tests := map[Part]math.Color{
		PartTorso:       c.Torso,
		PartHead:        c.Head,
		PartLeftForearm: c.Arm,
		PartRightShin:   c.Leg,
	}
	for p, want := range tests {
		if got := mustFind(t, &r, p).Color; got != want {
			t.Errorf("%s colour = %v, want %v", p, got, want)
		}
	}
}

func TestCustomHierarchy(t *testing.T) {
	root := &Node{
		Name:    "base",
		Segment: &Segment{Part: PartTorso, Slot: SlotTorso},
		Children: []*Node{{
			Name: "tip",
			Joint: func(s *math.TransformStack, in *Inputs) {
				s.Translate(math.Vec3{0, 1, 0})
			},
			Segment: &Segment{Part: PartHead, Slot: SlotHead},
		}},
	}
	a := NewAssemblerFor(root)
	var r Recorder
	s := math.NewTransformStack()
	a.Assemble(s, DefaultParams(), DefaultColors(), JointPose{}, 0, &r)

	if len(r.Emissions) != 2 || root.Count() != 2 {
		t.Fatalf("got %d emissions", len(r.Emissions))
	}
	if got := center(r.Emissions[1]); !got.ApproxEqualThreshold(math.Vec3{0, 1, 0}, eps) {
		t.Fatalf("tip centre = %v", got)
	}
	if s.Depth() != 1 {
		t.Fatalf("depth = %d", s.Depth())
	}
}

func TestSinkFunc(t *testing.T) {
	n := 0
	Assemble(math.NewTransformStack(), DefaultParams(), DefaultColors(), JointPose{}, 0,
		SinkFunc(func(Part, math.Mat4, math.Color) { n++ }))
	if n != int(PartCount) {
		t.Fatalf("sink called %d times", n)
	}
}
