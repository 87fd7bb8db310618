package rig

import (
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/math"
)

// Assembler walks a rigid hierarchy and emits one draw per segment.
type Assembler struct {
	root *Node
	in   Inputs
}

// NewAssembler returns an assembler for the humanoid figure.
func NewAssembler() *Assembler {
	return NewAssemblerFor(Humanoid())
}

// NewAssemblerFor returns an assembler for an arbitrary hierarchy.
func NewAssemblerFor(root *Node) *Assembler {
	return &Assembler{root: root}
}

func (a *Assembler) Root() *Node {
	return a.root
}

// Assemble places every segment under the current top frame of stack and
// hands it to sink. The stack depth on return equals the depth on entry.
func (a *Assembler) Assemble(stack *math.TransformStack, params Params, colors Colors, pose JointPose, sway float32, sink Sink) {
	a.in = Inputs{Params: params, Pose: pose, Sway: sway}
	depth := stack.Depth()

	a.root.Walk(stack, &a.in, func(seg *Segment) {
		sink.DrawPart(seg.Part, stack.Top(), colors.Slot(seg.Slot))
	})

	if stack.Depth() != depth {
		core.LogWarn("transform stack unbalanced after assembly: %d != %d", stack.Depth(), depth)
	}
}

// DrawFrame evaluates the pose for time t and assembles the figure.
func (a *Assembler) DrawFrame(stack *math.TransformStack, params Params, colors Colors, mode Mode, paused bool, t float64, sink Sink) JointPose {
	pose := ComputePose(t, mode, paused)
	a.Assemble(stack, params, colors, pose, SwayAngle(t, paused), sink)
	return pose
}

var humanoid = NewAssembler()

// Assemble runs the shared humanoid assembler. It is not safe for concurrent
// use; goroutines that render in parallel should own an Assembler each.
func Assemble(stack *math.TransformStack, params Params, colors Colors, pose JointPose, sway float32, sink Sink) {
	humanoid.Assemble(stack, params, colors, pose, sway, sink)
}

// DrawFrame runs the shared humanoid assembler for time t.
func DrawFrame(stack *math.TransformStack, params Params, colors Colors, mode Mode, paused bool, t float64, sink Sink) JointPose {
	return humanoid.DrawFrame(stack, params, colors, mode, paused, t, sink)
}
