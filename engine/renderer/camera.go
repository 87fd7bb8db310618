package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/YannUFLL/HumanGL/engine/math"
)

// Pitch limit for orbiting, 89 degrees. Keeps the view away from the poles
// where the up vector degenerates.
const pitchLimit float32 = 1.55334306

/**
 * @brief An orbit camera looking at a fixed target. The eye is stored in
 * spherical coordinates around the target so that orbiting never changes the
 * distance.
 */
type Camera struct {
	Target math.Vec3
	Up     math.Vec3
	// Vertical field of view in degrees.
	FOV  float32
	Near float32
	Far  float32

	yaw      float32
	pitch    float32
	distance float32
	home     [3]float32

	isDirty    bool
	viewMatrix math.Mat4
}

func NewCamera(eye, target math.Vec3, fov, near, far float32) *Camera {
	c := &Camera{
		Target: target,
		Up:     math.Vec3{0, 1, 0},
		FOV:    fov,
		Near:   near,
		Far:    far,
	}
	c.SetPosition(eye)
	c.home = [3]float32{c.yaw, c.pitch, c.distance}
	return c
}

// DefaultCamera frames the default humanoid from the front right.
func DefaultCamera() *Camera {
	return NewCamera(math.Vec3{2.5, 2.0, 4.0}, math.Vec3{0, 0, 0}, 60, 0.1, 100)
}

// SetPosition moves the eye, keeping the target.
func (c *Camera) SetPosition(eye math.Vec3) {
	offset := eye.Sub(c.Target)
	c.distance = offset.Len()
	if c.distance < math.K_FLOAT_EPSILON {
		c.distance = 1
		offset = math.Vec3{0, 0, 1}
	}
	c.pitch = math.Clamp(math.Asin(offset.Y()/c.distance), -pitchLimit, pitchLimit)
	c.yaw = math.Atan2(offset.X(), offset.Z())
	c.isDirty = true
}

func (c *Camera) Position() math.Vec3 {
	cp := math.Cos(c.pitch)
	offset := math.Vec3{
		cp * math.Sin(c.yaw),
		math.Sin(c.pitch),
		cp * math.Cos(c.yaw),
	}
	return c.Target.Add(offset.Mul(c.distance))
}

// Orbit rotates the eye around the target by the given angles in radians.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.yaw += dYaw
	if c.yaw > math.K_PI {
		c.yaw -= math.K_PI_2
	} else if c.yaw < -math.K_PI {
		c.yaw += math.K_PI_2
	}
	c.pitch = math.Clamp(c.pitch+dPitch, -pitchLimit, pitchLimit)
	c.isDirty = true
}

// Reset returns the eye to where the camera was created.
func (c *Camera) Reset() {
	c.yaw, c.pitch, c.distance = c.home[0], c.home[1], c.home[2]
	c.isDirty = true
}

func (c *Camera) View() math.Mat4 {
	if c.isDirty {
		c.viewMatrix = mgl32.LookAtV(c.Position(), c.Target, c.Up)
		c.isDirty = false
	}
	return c.viewMatrix
}

// Projection returns the perspective matrix for a viewport of the given
// aspect ratio (width / height).
func (c *Camera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(math.DegToRad(c.FOV), aspect, c.Near, c.Far)
}
