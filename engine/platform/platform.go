package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/YannUFLL/HumanGL/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window    *glfw.Window
	startTime float64
}

func New() (*Platform, error) {
	return &Platform{
		Window: nil,
	}, nil
}

// Startup opens a window with an OpenGL 4.1 core context and makes the
// context current on the calling thread.
func (p *Platform) Startup(applicationName string, width, height int) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True) // Required on macOS.

	window, err := glfw.CreateWindow(width, height, applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetCloseCallback(closeCallback)

	p.startTime = glfw.GetTime()
	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window was asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

// FramebufferSize is in pixels, which differs from the window size on HiDPI screens.
func (p *Platform) FramebufferSize() (int, int) {
	return p.Window.GetFramebufferSize()
}

// GetAbsoluteTime returns seconds since Startup.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

var keyMap = map[glfw.Key]core.KeyCode{
	glfw.KeyEnter:  core.KEY_ENTER,
	glfw.KeyEscape: core.KEY_ESCAPE,
	glfw.KeySpace:  core.KEY_SPACE,
	glfw.KeyLeft:   core.KEY_LEFT,
	glfw.KeyUp:     core.KEY_UP,
	glfw.KeyRight:  core.KEY_RIGHT,
	glfw.KeyDown:   core.KEY_DOWN,
	glfw.Key0:      core.KEY_0,
	glfw.Key1:      core.KEY_1,
	glfw.Key2:      core.KEY_2,
	glfw.Key3:      core.KEY_3,
	glfw.KeyA:      core.KEY_A,
	glfw.KeyC:      core.KEY_C,
	glfw.KeyP:      core.KEY_P,
	glfw.KeyQ:      core.KEY_Q,
	glfw.KeyR:      core.KEY_R,
	glfw.KeyS:      core.KEY_S,
	glfw.KeyW:      core.KEY_W,
	glfw.KeyX:      core.KEY_X,
	glfw.KeyZ:      core.KEY_Z,
	glfw.KeyF12:    core.KEY_F12,
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := keyMap[key]
	if !ok || action == glfw.Repeat {
		return
	}
	if err := core.InputProcessKey(code, action == glfw.Press); err != nil {
		core.LogDebug("dropped key %d: %s", code, err)
	}
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: uint32(width), WindowHeight: uint32(height)},
	})
}

func closeCallback(w *glfw.Window) {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

func (p *Platform) SetTitle(title string) {
	p.Window.SetTitle(title)
}
