package renderer

import (
	"fmt"
	"strings"

	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

// Backend draws unit cubes. Every body part is the same cube under a
// different model matrix, so this is the whole surface a backend needs.
type Backend interface {
	Initialize(width, height int) error
	Resized(width, height int) error
	BeginFrame(view, projection math.Mat4, clear math.Color) error
	DrawPart(part rig.Part, model math.Mat4, color math.Color)
	EndFrame() error
	Shutdown() error
}

type RendererType uint8

const (
	OpenGL RendererType = iota
	Software
)

func (rt RendererType) String() string {
	switch rt {
	case OpenGL:
		return "opengl"
	case Software:
		return "software"
	default:
		return fmt.Sprintf("RendererType(%d)", uint8(rt))
	}
}

func ParseRendererType(s string) (RendererType, error) {
	switch strings.ToLower(s) {
	case "opengl", "gl":
		return OpenGL, nil
	case "software", "sw":
		return Software, nil
	}
	return 0, fmt.Errorf("%q: %w", s, core.ErrUnknownBackend)
}

// ClearColor is the default background.
var ClearColor = math.NewColorRGB(0.08, 0.09, 0.11)

// Renderer is the frontend the game talks to. It owns the camera and the
// viewport size and forwards cube draws to its backend. It satisfies
// rig.Sink, so the assembler can draw straight into it.
type Renderer struct {
	backend Backend
	camera  *Camera
	clear   math.Color

	width, height int
	inFrame       bool
	drawn         int
}

func New(backend Backend, camera *Camera) *Renderer {
	if camera == nil {
		camera = DefaultCamera()
	}
	return &Renderer{
		backend: backend,
		camera:  camera,
		clear:   ClearColor,
	}
}

func (r *Renderer) Initialize(width, height int) error {
	r.width, r.height = width, height
	if err := r.backend.Initialize(width, height); err != nil {
		return err
	}
	core.LogDebug("renderer initialized at %dx%d", width, height)
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

// OnResize ignores zero sizes, which platforms report while minimised.
func (r *Renderer) OnResize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.width, r.height = width, height
	return r.backend.Resized(width, height)
}

func (r *Renderer) Camera() *Camera {
	return r.camera
}

func (r *Renderer) SetClearColor(c math.Color) {
	r.clear = c
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *Renderer) BeginFrame() error {
	if err := r.backend.BeginFrame(r.camera.View(), r.camera.Projection(r.Aspect()), r.clear); err != nil {
		return err
	}
	r.inFrame = true
	r.drawn = 0
	return nil
}

// DrawPart forwards one cube. Calls outside BeginFrame/EndFrame are dropped.
func (r *Renderer) DrawPart(part rig.Part, model math.Mat4, color math.Color) {
	if !r.inFrame {
		core.LogWarn("DrawPart(%s) outside of a frame", part)
		return
	}
	r.backend.DrawPart(part, model, color)
	r.drawn++
}

func (r *Renderer) EndFrame() error {
	r.inFrame = false
	return r.backend.EndFrame()
}

// Drawn returns how many parts the current or last frame drew.
func (r *Renderer) Drawn() int {
	return r.drawn
}

// DrawFrame brackets draw with BeginFrame and EndFrame.
func (r *Renderer) DrawFrame(draw func(sink rig.Sink)) error {
	if err := r.BeginFrame(); err != nil {
		core.LogError("renderer BeginFrame failed: %s", err)
		return err
	}
	draw(r)
	if err := r.EndFrame(); err != nil {
		core.LogError("renderer EndFrame failed: %s", err)
		return err
	}
	return nil
}
