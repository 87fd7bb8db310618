package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/platform"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/renderer/opengl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Platform is the window the engine drives. The glfw platform is the real
// one; tests substitute their own.
type Platform interface {
	Startup(applicationName string, width, height int) error
	Shutdown() error
	PumpMessages() bool
	SwapBuffers()
	FramebufferSize() (int, int)
	SetTitle(title string)
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	isSuspended  bool
	platform     Platform
	renderer     *renderer.Renderer
	watcher      *config.Watcher
	metrics      *core.FrameMetrics
	width        int
	height       int
	clock        *core.Clock
	lastTime     float64
	titleTimer   float64
}

// New builds an engine with a glfw window and the backend named in the
// application config.
func New(g *Game) (*Engine, error) {
	p, err := platform.New()
	if err != nil {
		return nil, err
	}

	var backend renderer.Backend
	switch g.ApplicationConfig.Renderer {
	case renderer.OpenGL:
		backend = opengl.New()
	default:
		return nil, fmt.Errorf("%s cannot present to a window: %w", g.ApplicationConfig.Renderer, core.ErrUnknownBackend)
	}
	return NewWithPlatform(g, p, backend), nil
}

func NewWithPlatform(g *Game, p Platform, backend renderer.Backend) *Engine {
	camera := renderer.DefaultCamera()
	if cfg := g.ApplicationConfig.Config; cfg != nil {
		camera = renderer.NewCamera(cfg.Camera.Eye, cfg.Camera.Target, cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far)
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
		platform:     p,
		renderer:     renderer.New(backend, camera),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// Init the input system
	if err := core.InputInitialize(); err != nil {
		return err
	}
	// Init the event system
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	app := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(app.Name, app.StartWidth, app.StartHeight); err != nil {
		return err
	}
	if w, h := e.platform.FramebufferSize(); w > 0 && h > 0 {
		e.width, e.height = w, h
	}

	if err := e.renderer.Initialize(e.width, e.height); err != nil {
		return err
	}

	if app.ConfigPath != "" {
		w, err := config.NewWatcher(app.ConfigPath)
		if err != nil {
			core.LogWarn("config reload disabled: %s", err)
		} else {
			e.watcher = w
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.isRunning.Store(true)
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}
		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}

		e.applyReloadedConfig()

		if err := e.gameInstance.FnRender(e.renderer, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}
		e.platform.SwapBuffers()

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		_ = core.InputUpdate(delta)

		e.metrics.Update(delta)
		e.updateTitle(delta)

		e.lastTime = currentTime
	}
	return nil
}

// Stop asks the loop to exit after the current frame. Safe from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
	}
	errs = append(errs,
		e.renderer.Shutdown(),
		e.platform.Shutdown(),
		core.EventSystemShutdown(),
		core.InputShutdown(),
	)
	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}

func (e *Engine) GetFramebufferSize() (int, int) {
	return e.width, e.height
}

func (e *Engine) applyReloadedConfig() {
	if e.watcher == nil {
		return
	}
	select {
	case cfg := <-e.watcher.Configs():
		if err := core.SetLogLevel(cfg.Log.Level); err != nil {
			core.LogWarn("%s", err)
		}
		if e.gameInstance.FnOnConfig != nil {
			if err := e.gameInstance.FnOnConfig(cfg); err != nil {
				core.LogError("applying reloaded config: %s", err)
				return
			}
		}
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: cfg})
	default:
	}
}

// Once per second the window title shows the frame rate.
func (e *Engine) updateTitle(delta float64) {
	e.titleTimer += delta
	if e.titleTimer < 1 {
		return
	}
	e.titleTimer = 0
	fps, ms := e.metrics.Frame()
	e.platform.SetTitle(fmt.Sprintf("%s | %.0f fps | %.2f ms", e.gameInstance.ApplicationConfig.Name, fps, ms))
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := int(se.WindowWidth), int(se.WindowHeight)
	if width == e.width && height == e.height {
		return false
	}
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization. The zero size is kept so that restoring to the
	// previous size still counts as a change.
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		e.width, e.height = 0, 0
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
		// The first frame after resuming must not see the suspended time.
		e.clock.Update()
		e.lastTime = e.clock.Elapsed()
	}
	e.width, e.height = width, height
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError("%s", err)
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("%s", err)
		}
	}
	return false
}
