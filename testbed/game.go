package testbed

import (
	"github.com/YannUFLL/HumanGL/engine"
	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

// Orbit speed for the arrow keys, radians per second.
const orbitSpeed float32 = 1.5

type TestGame struct {
	*engine.Game
}

type gameState struct {
	*State

	assembler *rig.Assembler
	stack     *math.TransformStack
	camera    *renderer.Camera
	width     int
	height    int
}

func NewTestGame(app *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: app,
			State: &gameState{
				State:     NewState(app.Config),
				assembler: rig.NewAssembler(),
				stack:     math.NewTransformStack(),
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnOnConfig = tg.OnConfig

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")
	core.LogInfo("keys: 1/2/3 idle/walk/jump, space pause, Q/W arms, A/S legs, Z/X limbs, R reset, arrows orbit, Esc quit")
	return nil
}

// Update applies the actions whose key went down this frame, then advances time.
func (g *TestGame) Update(deltaTime float64) error {
	state := g.state()

	for _, key := range BindingOrder {
		if !core.InputIsKeyPressed(key) {
			continue
		}
		action := Bindings[key]
		if action == ActionQuit {
			// The engine already quits on Escape.
			continue
		}
		if state.Apply(action) {
			core.LogDebug("%s", state.Status())
		}
	}

	if state.camera != nil {
		step := orbitSpeed * float32(deltaTime)
		var yaw, pitch float32
		if core.InputIsKeyDown(core.KEY_LEFT) {
			yaw -= step
		}
		if core.InputIsKeyDown(core.KEY_RIGHT) {
			yaw += step
		}
		if core.InputIsKeyDown(core.KEY_UP) {
			pitch += step
		}
		if core.InputIsKeyDown(core.KEY_DOWN) {
			pitch -= step
		}
		if yaw != 0 || pitch != 0 {
			state.camera.Orbit(yaw, pitch)
		}
	}

	state.Advance(deltaTime)
	return nil
}

func (g *TestGame) Render(r *renderer.Renderer, deltaTime float64) error {
	state := g.state()
	state.camera = r.Camera()
	return r.DrawFrame(func(sink rig.Sink) {
		state.assembler.DrawFrame(state.stack, state.Params, state.Colors, state.Mode, state.Paused, state.Time, sink)
	})
}

func (g *TestGame) OnResize(width, height int) error {
	state := g.state()
	state.width, state.height = width, height
	return nil
}

func (g *TestGame) OnConfig(cfg *config.Config) error {
	g.state().Reconfigure(cfg)
	core.LogInfo("applied reloaded config: %s", g.state().Status())
	return nil
}

// Snapshot exposes the game state, for tests and overlays.
func (g *TestGame) Snapshot() State {
	return *g.state().State
}
