package rig

import (
	"fmt"

	"github.com/YannUFLL/HumanGL/engine/math"
)

// Part identifies a rigid body segment.
type Part uint8

const (
	PartTorso Part = iota
	PartHead
	PartRightUpperArm
	PartRightForearm
	PartLeftUpperArm
	PartLeftForearm
	PartRightThigh
	PartRightShin
	PartLeftThigh
	PartLeftShin
	PartCount
)

var partNames = [PartCount]string{
	"torso",
	"head",
	"right_upper_arm",
	"right_forearm",
	"left_upper_arm",
	"left_forearm",
	"right_thigh",
	"right_shin",
	"left_thigh",
	"left_shin",
}

func (p Part) String() string {
	if p < PartCount {
		return partNames[p]
	}
	return fmt.Sprintf("part(%d)", uint8(p))
}

// Slot selects which region colour a segment is drawn with.
type Slot uint8

const (
	SlotTorso Slot = iota
	SlotHead
	SlotArm
	SlotLeg
)

// Inputs is what placements read while the hierarchy is walked.
type Inputs struct {
	Params Params
	Pose   JointPose
	Sway   float32
}

// Placement mutates the top frame of the stack.
type Placement func(s *math.TransformStack, in *Inputs)

// Segment is a drawable cube attached to a node. Its placement runs in a
// frame of its own, so scale never leaks into the node's children.
type Segment struct {
	Part  Part
	Slot  Slot
	Place Placement
}

// Node is one joint of a rigid hierarchy. Joint placement is applied in the
// node's frame and inherited by the segment and every child.
type Node struct {
	Name     string
	Joint    Placement
	Segment  *Segment
	Children []*Node
}

// Walk visits n depth-first. Each node runs inside its own stack scope;
// the segment is emitted before children are visited.
func (n *Node) Walk(s *math.TransformStack, in *Inputs, visit func(seg *Segment)) {
	s.Scope(func() {
		if n.Joint != nil {
			n.Joint(s, in)
		}
		if n.Segment != nil {
			s.Scope(func() {
				if n.Segment.Place != nil {
					n.Segment.Place(s, in)
				}
				visit(n.Segment)
			})
		}
		for _, c := range n.Children {
			c.Walk(s, in, visit)
		}
	})
}

// Count returns the number of segments under n, n included.
func (n *Node) Count() int {
	c := 0
	if n.Segment != nil {
		c++
	}
	for _, ch := range n.Children {
		c += ch.Count()
	}
	return c
}

var (
	axisX = math.Vec3{1, 0, 0}
	axisY = math.Vec3{0, 1, 0}
)

// Humanoid builds the fixed cube-figure hierarchy. Every pivot is expressed
// relative to the torso centre.
func Humanoid() *Node {
	return &Node{
		Name: "root",
		Joint: func(s *math.TransformStack, in *Inputs) {
			s.Translate(math.Vec3{0, in.Pose.Bounce, 0})
			s.Rotate(in.Sway, axisY)
		},
		Segment: &Segment{
			Part: PartTorso,
			Slot: SlotTorso,
			Place: func(s *math.TransformStack, in *Inputs) {
				p := &in.Params
				s.Scale(math.Vec3{p.TorsoW, p.TorsoH, p.TorsoD})
			},
		},
		Children: []*Node{
			{
				Name: "neck",
				Segment: &Segment{
					Part: PartHead,
					Slot: SlotHead,
					Place: func(s *math.TransformStack, in *Inputs) {
						p := &in.Params
						s.Translate(math.Vec3{0, p.TorsoH*0.5 + p.HeadH*0.5, 0})
						s.Scale(math.Vec3{p.HeadH * 0.8, p.HeadH, p.HeadH * 0.8})
					},
				},
			},
			arm("right", 1, PartRightUpperArm, PartRightForearm),
			arm("left", -1, PartLeftUpperArm, PartLeftForearm),
			leg("right", 1, PartRightThigh, PartRightShin),
			leg("left", -1, PartLeftThigh, PartLeftShin),
		},
	}
}

// arm builds a shoulder and elbow chain. side is +1 for the right arm and -1
// for the left; it mirrors the pivot and both joint angles.
func arm(name string, side float32, upper, fore Part) *Node {
	return &Node{
		Name: name + "_shoulder",
		Joint: func(s *math.TransformStack, in *Inputs) {
			p := &in.Params
			s.Translate(math.Vec3{side * (p.TorsoW*0.5 + p.ArmR), p.TorsoH * 0.35, 0})
			s.Rotate(-side*in.Pose.WalkSwing, axisX)
		},
		Segment: &Segment{
			Part: upper,
			Slot: SlotArm,
			Place: func(s *math.TransformStack, in *Inputs) {
				p := &in.Params
				s.Translate(math.Vec3{0, -p.UpperArmL * 0.5, 0})
				s.Scale(math.Vec3{p.ArmR, p.UpperArmL, p.ArmR})
			},
		},
		Children: []*Node{
			{
				Name: name + "_elbow",
				Joint: func(s *math.TransformStack, in *Inputs) {
					s.Translate(math.Vec3{0, -in.Params.UpperArmL, 0})
					s.Rotate(side*in.Pose.ElbowFlex, axisX)
				},
				Segment: &Segment{
					Part: fore,
					Slot: SlotArm,
					Place: func(s *math.TransformStack, in *Inputs) {
						p := &in.Params
						s.Translate(math.Vec3{0, -p.ForeArmL * 0.5, 0})
						s.Scale(math.Vec3{p.ArmR * 0.95, p.ForeArmL, p.ArmR * 0.95})
					},
				},
			},
		},
	}
}

// leg builds a hip and knee chain. The hip angle is mirrored by side; the
// knee bends the same way on both legs.
func leg(name string, side float32, thigh, shin Part) *Node {
	return &Node{
		Name: name + "_hip",
		Joint: func(s *math.TransformStack, in *Inputs) {
			p := &in.Params
			s.Translate(math.Vec3{side * p.TorsoW * 0.25, -p.TorsoH * 0.5, 0})
			s.Rotate(side*in.Pose.HipSwing, axisX)
		},
		Segment: &Segment{
			Part: thigh,
			Slot: SlotLeg,
			Place: func(s *math.TransformStack, in *Inputs) {
				p := &in.Params
				s.Translate(math.Vec3{0, -p.ThighL * 0.5, 0})
				s.Scale(math.Vec3{p.LegR, p.ThighL, p.LegR})
			},
		},
		Children: []*Node{
			{
				Name: name + "_knee",
				Joint: func(s *math.TransformStack, in *Inputs) {
					s.Translate(math.Vec3{0, -in.Params.ThighL, 0})
					s.Rotate(in.Pose.KneeFlex, axisX)
				},
				Segment: &Segment{
					Part: shin,
					Slot: SlotLeg,
					Place: func(s *math.TransformStack, in *Inputs) {
						p := &in.Params
						s.Translate(math.Vec3{0, -p.ShinL * 0.5, 0})
						s.Scale(math.Vec3{p.LegR * 0.95, p.ShinL, p.LegR * 0.95})
					},
				},
			},
		},
	}
}
