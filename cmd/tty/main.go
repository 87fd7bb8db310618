/*
tty draws the HumanGL demo into a terminal with half-block cells, two pixels
per character, using the software renderer.
*/
package main

import (
	"flag"
	"io"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/YannUFLL/HumanGL/engine"
	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/renderer/software"
	"github.com/YannUFLL/HumanGL/testbed"
)

const (
	sampleRate = beep.SampleRate(44100)
	// Terminals report presses only; a key counts as held until its repeat
	// events stop for this long.
	holdWindow = 150 * time.Millisecond
)

var runes = map[rune]core.KeyCode{
	'1': core.KEY_1,
	'2': core.KEY_2,
	'3': core.KEY_3,
	' ': core.KEY_SPACE,
	'q': core.KEY_Q,
	'w': core.KEY_W,
	'a': core.KEY_A,
	's': core.KEY_S,
	'z': core.KEY_Z,
	'x': core.KEY_X,
	'r': core.KEY_R,
}

var arrows = map[tcell.Key]core.KeyCode{
	tcell.KeyLeft:  core.KEY_LEFT,
	tcell.KeyRight: core.KEY_RIGHT,
	tcell.KeyUp:    core.KEY_UP,
	tcell.KeyDown:  core.KEY_DOWN,
}

// ClickGenerator is a short decaying sine, played when a foot lands.
type ClickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewClickGenerator(sr beep.SampleRate, freq float64) *ClickGenerator {
	return &ClickGenerator{sr: sr, freq: freq}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*40)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}

type tty struct {
	screen   tcell.Screen
	game     *testbed.TestGame
	backend  *software.Backend
	renderer *renderer.Renderer
	steps    testbed.StepDetector
	held     map[core.KeyCode]time.Time
	sound    bool
}

func (t *tty) resize() {
	cols, rows := t.screen.Size()
	// The last row is the status line.
	if rows > 1 && cols > 0 {
		if err := t.renderer.OnResize(cols, (rows-1)*2); err != nil {
			core.LogError("%s", err)
		}
	}
}

// handle returns false once the user asks to quit.
func (t *tty) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if code, ok := arrows[ev.Key()]; ok {
			t.held[code] = time.Now()
		}
		if ev.Key() == tcell.KeyRune {
			if code, ok := runes[ev.Rune()]; ok {
				t.held[code] = time.Now()
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
	return true
}

func (t *tty) frame(dt float64) {
	now := time.Now()
	for code, last := range t.held {
		down := now.Sub(last) < holdWindow
		_ = core.InputProcessKey(code, down)
		if !down {
			delete(t.held, code)
		}
	}
	if err := t.game.Update(dt); err != nil {
		core.LogError("%s", err)
	}
	_ = core.InputUpdate(dt)

	state := t.game.Snapshot()
	if t.steps.Observe(state.Mode, state.Pose()) && t.sound {
		speaker.Play(beep.Take(sampleRate.N(80*time.Millisecond), NewClickGenerator(sampleRate, 220)))
	}

	if err := t.game.Render(t.renderer, dt); err != nil {
		core.LogError("render: %s", err)
		return
	}
	t.draw(state.Status())
}

func (t *tty) draw(status string) {
	img := t.backend.Image()
	b := img.Bounds()
	for y := 0; y+1 < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			top := img.RGBAAt(x, y)
			bottom := img.RGBAAt(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	cols, rows := t.screen.Size()
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		t.screen.SetContent(x, rows-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	sound := flag.Bool("sound", false, "click when a foot touches the ground")
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

	screen, err := tcell.NewScreen()
	if err != nil {
		core.LogFatal("%s", err)
	}
	if err := screen.Init(); err != nil {
		core.LogFatal("%s", err)
	}
	// The terminal belongs to the screen from here on.
	core.SetLogOutput(io.Discard)
	fail := func(err error) {
		screen.Fini()
		core.SetLogOutput(os.Stderr)
		core.LogFatal("%s", err)
	}

	if err := core.InputInitialize(); err != nil {
		fail(err)
	}
	core.EventSystemInitialize()

	app := engine.NewApplicationConfig(cfg, "")
	app.Renderer = renderer.Software

	backend := software.New(1)
	camera := renderer.NewCamera(cfg.Camera.Eye, cfg.Camera.Target, cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far)
	t := &tty{
		screen:   screen,
		game:     testbed.NewTestGame(app),
		backend:  backend,
		renderer: renderer.New(backend, camera),
		held:     make(map[core.KeyCode]time.Time),
		sound:    *sound,
	}
	cols, rows := screen.Size()
	if err := t.renderer.Initialize(max(cols, 1), max((rows-1)*2, 2)); err != nil {
		fail(err)
	}
	if err := t.game.Initialize(); err != nil {
		fail(err)
	}

	if t.sound {
		if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
			t.sound = false
		} else {
			defer speaker.Close()
		}
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()

loop:
	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				break loop
			}
		case now := <-ticker.C:
			t.frame(now.Sub(last).Seconds())
			last = now
		}
	}

	_ = t.renderer.Shutdown()
	_ = core.EventSystemShutdown()
	_ = core.InputShutdown()
	screen.Fini()
}
