package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

// Backend draws the figure with an OpenGL 4.1 core context. The context must
// be current on the calling thread before Initialize.
type Backend struct {
	light   renderer.Light
	program *program

	vao, vbo, ebo uint32
	indexCount    int32
}

func New() *Backend {
	return &Backend{light: renderer.DefaultLight()}
}

func (b *Backend) Initialize(width, height int) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	core.LogInfo("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	prog, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	b.program = prog

	b.createCube()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (b *Backend) createCube() {
	vertices := renderer.CubeVertexData()
	indices := renderer.CubeIndices

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(&indices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))

	gl.BindVertexArray(0)
	b.indexCount = int32(len(indices))
}

func (b *Backend) Resized(width, height int) error {
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (b *Backend) BeginFrame(view, projection math.Mat4, clear math.Color) error {
	if b.program == nil {
		return core.ErrNotInitialized
	}
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	b.program.use()
	gl.UniformMatrix4fv(b.program.view, 1, false, &view[0])
	gl.UniformMatrix4fv(b.program.projection, 1, false, &projection[0])
	d := b.light.Direction
	gl.Uniform3f(b.program.lightDir, d[0], d[1], d[2])
	gl.Uniform1f(b.program.ambient, b.light.Ambient)

	gl.BindVertexArray(b.vao)
	return nil
}

func (b *Backend) DrawPart(part rig.Part, model math.Mat4, color math.Color) {
	gl.UniformMatrix4fv(b.program.model, 1, false, &model[0])
	gl.Uniform4f(b.program.color, color.R, color.G, color.B, color.A)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (b *Backend) EndFrame() error {
	gl.BindVertexArray(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x", code)
	}
	return nil
}

func (b *Backend) Shutdown() error {
	if b.program == nil {
		return nil
	}
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.program.destroy()
	b.program = nil
	return nil
}
