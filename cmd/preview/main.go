/*
preview runs the HumanGL demo in an ebiten window on the software renderer,
for machines without an OpenGL 4.1 driver.
*/
package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/YannUFLL/HumanGL/engine"
	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/renderer/software"
	"github.com/YannUFLL/HumanGL/testbed"
)

var keys = map[ebiten.Key]core.KeyCode{
	ebiten.KeyDigit1:     core.KEY_1,
	ebiten.KeyDigit2:     core.KEY_2,
	ebiten.KeyDigit3:     core.KEY_3,
	ebiten.KeySpace:      core.KEY_SPACE,
	ebiten.KeyQ:          core.KEY_Q,
	ebiten.KeyW:          core.KEY_W,
	ebiten.KeyA:          core.KEY_A,
	ebiten.KeyS:          core.KEY_S,
	ebiten.KeyZ:          core.KEY_Z,
	ebiten.KeyX:          core.KEY_X,
	ebiten.KeyR:          core.KEY_R,
	ebiten.KeyEscape:     core.KEY_ESCAPE,
	ebiten.KeyArrowLeft:  core.KEY_LEFT,
	ebiten.KeyArrowRight: core.KEY_RIGHT,
	ebiten.KeyArrowUp:    core.KEY_UP,
	ebiten.KeyArrowDown:  core.KEY_DOWN,
}

type previewGame struct {
	game     *testbed.TestGame
	backend  *software.Backend
	renderer *renderer.Renderer
	hud      *software.HUD
	frame    *ebiten.Image
	width    int
	height   int
}

func (p *previewGame) Update() error {
	for k, code := range keys {
		_ = core.InputProcessKey(code, ebiten.IsKeyPressed(k))
	}
	if core.InputIsKeyPressed(core.KEY_ESCAPE) {
		return ebiten.Termination
	}

	dt := 1 / float64(ebiten.TPS())
	if err := p.game.Update(dt); err != nil {
		return err
	}
	_ = core.InputUpdate(dt)
	return nil
}

func (p *previewGame) Draw(screen *ebiten.Image) {
	if p.hud != nil {
		p.hud.SetLines(p.game.Snapshot().Status())
	}
	if err := p.game.Render(p.renderer, 0); err != nil {
		core.LogError("render: %s", err)
		return
	}
	p.frame.WritePixels(p.backend.Image().Pix)
	screen.DrawImage(p.frame, nil)
}

func (p *previewGame) Layout(_, _ int) (int, int) {
	return p.width, p.height
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	supersample := flag.Int("supersample", 2, "render at N times the size and downsample")
	hud := flag.Bool("hud", true, "draw the current mode and sizes")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			core.LogFatal("%s", err)
		}
		cfg = loaded
	} else if err := cfg.Resolve(); err != nil {
		core.LogFatal("%s", err)
	}
	if err := core.SetLogLevel(cfg.Log.Level); err != nil {
		core.LogWarn("%s", err)
	}

	if err := core.InputInitialize(); err != nil {
		core.LogFatal("%s", err)
	}
	defer core.InputShutdown()
	core.EventSystemInitialize()
	defer core.EventSystemShutdown()

	app := engine.NewApplicationConfig(cfg, "")
	app.Renderer = renderer.Software

	backend := software.New(*supersample)
	p := &previewGame{
		game:    testbed.NewTestGame(app),
		backend: backend,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}
	if *hud {
		p.hud = software.NewHUD()
		backend.SetHUD(p.hud)
	}
	camera := renderer.NewCamera(cfg.Camera.Eye, cfg.Camera.Target, cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far)
	p.renderer = renderer.New(backend, camera)
	if err := p.renderer.Initialize(p.width, p.height); err != nil {
		core.LogFatal("%s", err)
	}
	defer p.renderer.Shutdown()
	p.frame = ebiten.NewImage(p.width, p.height)

	if err := p.game.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	ebiten.SetWindowTitle(cfg.Window.Title + " (software)")
	ebiten.SetWindowSize(p.width, p.height)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(p); err != nil && !errors.Is(err, ebiten.Termination) {
		core.LogError("%s", err)
	}
}
