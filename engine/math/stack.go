package math

import "github.com/go-gl/mathgl/mgl32"

// TransformStack is an ordered stack of affine frames. The top frame is the
// current model transform; pushing opens a child frame and popping returns to
// the parent. The stack never drops below one frame.
//
// All mutators right-multiply the top frame, so successive calls compose in
// object space: Translate then Scale scales about the translated origin.
type TransformStack struct {
	frames []Mat4
}

// NewTransformStack returns a stack holding a single identity frame.
func NewTransformStack() *TransformStack {
	s := &TransformStack{frames: make([]Mat4, 1, 16)}
	s.frames[0] = mgl32.Ident4()
	return s
}

// Push duplicates the top frame.
func (s *TransformStack) Push() {
	s.frames = append(s.frames, s.frames[len(s.frames)-1])
}

// Pop discards the top frame. It is a no-op when only the bottom frame remains.
func (s *TransformStack) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Top returns a copy of the current frame.
func (s *TransformStack) Top() Mat4 {
	return s.frames[len(s.frames)-1]
}

func (s *TransformStack) Depth() int {
	return len(s.frames)
}

// Reset drops every frame above the bottom one and restores it to identity.
func (s *TransformStack) Reset() {
	s.frames = s.frames[:1]
	s.frames[0] = mgl32.Ident4()
}

// Scope pushes a frame, runs fn and pops the frame again, even if fn panics.
func (s *TransformStack) Scope(fn func()) {
	s.Push()
	defer s.Pop()
	fn()
}

func (s *TransformStack) Translate(v Vec3) {
	s.apply(mgl32.Translate3D(v[0], v[1], v[2]))
}

// Rotate turns the top frame by angle radians about axis. The axis is
// normalized here; a zero-length axis leaves the frame unchanged.
func (s *TransformStack) Rotate(angle float32, axis Vec3) {
	l := axis.Len()
	if l == 0 {
		return
	}
	s.apply(mgl32.HomogRotate3D(angle, axis.Mul(1/l)))
}

func (s *TransformStack) Scale(v Vec3) {
	s.apply(mgl32.Scale3D(v[0], v[1], v[2]))
}

// MultMatrix right-multiplies the top frame by an arbitrary matrix.
func (s *TransformStack) MultMatrix(mat Mat4) {
	s.apply(mat)
}

func (s *TransformStack) apply(mat Mat4) {
	top := len(s.frames) - 1
	s.frames[top] = s.frames[top].Mul4(mat)
}
