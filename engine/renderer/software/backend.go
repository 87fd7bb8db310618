package software

import (
	"fmt"
	"image"

	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

// Vertices closer to the eye plane than this are clipped with their triangle.
const minClipW float32 = 1e-4

// Backend rasterizes the figure on the CPU. With Supersample > 1 it renders
// at a multiple of the output size and filters down in EndFrame.
//
// A Backend is not safe for concurrent use; give each goroutine its own.
type Backend struct {
	supersample int
	light       renderer.Light
	hud         *HUD

	width, height int
	fb            *FrameBuffer
	out           *image.RGBA

	view       math.Mat4
	projection math.Mat4
}

func New(supersample int) *Backend {
	return &Backend{
		supersample: math.Clamp(supersample, 1, 4),
		light:       renderer.DefaultLight(),
	}
}

// SetHUD attaches a text overlay drawn after downsampling; nil removes it.
func (b *Backend) SetHUD(h *HUD) {
	b.hud = h
}

func (b *Backend) HUD() *HUD {
	return b.hud
}

func (b *Backend) Initialize(width, height int) error {
	return b.Resized(width, height)
}

func (b *Backend) Resized(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	b.width, b.height = width, height
	b.fb = NewFrameBuffer(width*b.supersample, height*b.supersample)
	b.out = nil
	return nil
}

func (b *Backend) BeginFrame(view, projection math.Mat4, clear math.Color) error {
	if b.fb == nil {
		return fmt.Errorf("software backend: BeginFrame before Initialize")
	}
	b.view, b.projection = view, projection
	b.fb.Clear(clear)
	return nil
}

func (b *Backend) DrawPart(part rig.Part, model math.Mat4, color math.Color) {
	modelView := b.view.Mul4(model)
	w, h := float32(b.fb.Width), float32(b.fb.Height)

	for _, tri := range renderer.CubeTriangles() {
		var eye [3]math.Vec3
		var screen [3]ScreenVertex
		clipped := false

		for i, p := range tri.V {
			e := modelView.Mul4x1(p.Vec4(1))
			c := b.projection.Mul4x1(e)
			if c[3] < minClipW {
				clipped = true
				break
			}
			eye[i] = e.Vec3()
			ndc := c.Vec3().Mul(1 / c[3])
			screen[i] = ScreenVertex{
				X: (ndc[0]*0.5 + 0.5) * w,
				Y: (0.5 - ndc[1]*0.5) * h,
				Z: ndc[2],
			}
		}
		if clipped {
			continue
		}

		// Face normal in view space, where the light is defined.
		n := eye[1].Sub(eye[0]).Cross(eye[2].Sub(eye[0]))
		if n.Len() == 0 {
			continue
		}
		r, g, bl, a := b.light.Shade(color, n.Normalize()).RGBA8()
		RasterizeTriangle(b.fb, screen, r, g, bl, a)
	}
}

func (b *Backend) EndFrame() error {
	if b.supersample > 1 {
		b.out = Downsample(b.out, b.fb.Image(), b.width, b.height)
	} else {
		b.out = b.fb.Image()
	}
	if b.hud != nil {
		b.hud.Draw(b.out)
	}
	return nil
}

// Image returns the last finished frame at output size. It is reused by the
// next frame; copy it to keep it.
func (b *Backend) Image() *image.RGBA {
	return b.out
}

func (b *Backend) Shutdown() error {
	b.fb, b.out = nil, nil
	return nil
}
