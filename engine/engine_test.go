package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

type fakePlatform struct {
	frames   int
	pumped   int
	swapped  int
	shutdown bool
	onPump   func(n int)
}

func (p *fakePlatform) Startup(string, int, int) error { return nil }
func (p *fakePlatform) Shutdown() error { p.shutdown = true; return nil }
func (p *fakePlatform) SwapBuffers() { p.swapped++ }
func (p *fakePlatform) FramebufferSize() (int, int) { return 320, 200 }
func (p *fakePlatform) SetTitle(string) {}
func (p *fakePlatform) PumpMessages() bool {
	p.pumped++
	if p.onPump != nil {
		p.onPump(p.pumped)
	}
	return p.pumped <= p.frames
}

type nullBackend struct {
	width, height int
	drawn         int
}

func (b *nullBackend) Initialize(w, h int) error { b.width, b.height = w, h; return nil }
func (b *nullBackend) Resized(w, h int) error { b.width, b.height = w, h; return nil }
func (b *nullBackend) BeginFrame(_, _ math.Mat4, _ math.Color) error {
	return nil
}
func (b *nullBackend) DrawPart(rig.Part, math.Mat4, math.Color) { b.drawn++ }
func (b *nullBackend) EndFrame() error { return nil }
func (b *nullBackend) Shutdown() error { return nil }

func newTestEngine(t *testing.T, frames int) (*Engine, *fakePlatform, *nullBackend, *int) {
	t.Helper()
	updates := 0
	g := &Game{
		ApplicationConfig: NewApplicationConfig(config.Default(), ""),
		FnUpdate: func(float64) error {
			updates++
			return nil
		},
		FnRender: func(r *renderer.Renderer, _ float64) error {
			return r.DrawFrame(func(sink rig.Sink) {
				rig.DrawFrame(math.NewTransformStack(), rig.DefaultParams(), rig.DefaultColors(), rig.ModeIdle, false, 0, sink)
			})
		},
	}
	p := &fakePlatform{frames: frames}
	b := &nullBackend{}
	e := NewWithPlatform(g, p, b)
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	return e, p, b, &updates
}

func TestRunUntilWindowCloses(t *testing.T) {
	e, p, b, updates := newTestEngine(t, 3)

	if w, h := e.GetFramebufferSize(); w != 320 || h != 200 {
		t.Fatalf("framebuffer %dx%d", w, h)
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if *updates != 3 || p.swapped != 3 {
		t.Errorf("updates = %d, swaps = %d", *updates, p.swapped)
	}
	if b.drawn != 3*int(rig.PartCount) {
		t.Errorf("drew %d parts", b.drawn)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if !p.shutdown {
		t.Error("platform not shut down")
	}
}

func TestEscapeQuits(t *testing.T) {
	e, p, _, updates := newTestEngine(t, 100)
	defer e.Shutdown()

	p.onPump = func(n int) {
		if n == 2 {
			_ = core.InputProcessKey(core.KEY_ESCAPE, true)
		}
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	// Quit is observed at the top of the next frame.
	if *updates != 2 {
		t.Errorf("updates = %d", *updates)
	}
}

func TestMinimizeSuspends(t *testing.T) {
	for _, tc := range []struct {
		name          string
		width, height uint32
	}{
		{"restore to a new size", 640, 480},
		{"restore to the same size", 320, 200},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, p, b, updates := newTestEngine(t, 4)
			defer e.Shutdown()

			p.onPump = func(n int) {
				switch n {
				case 2:
					core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{}})
				case 4:
					core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: tc.width, WindowHeight: tc.height}})
				}
			}
			if err := e.Run(); err != nil {
				t.Fatal(err)
			}
			if *updates != 2 {
				t.Errorf("updates = %d, want frames 1 and 4 only", *updates)
			}
			if b.width != int(tc.width) || b.height != int(tc.height) {
				t.Errorf("backend size %dx%d", b.width, b.height)
			}
			if w, h := e.GetFramebufferSize(); w != int(tc.width) || h != int(tc.height) {
				t.Errorf("framebuffer %dx%d", w, h)
			}
		})
	}
}

func TestResumeSkipsSuspendedTime(t *testing.T) {
	e, p, _, _ := newTestEngine(t, 4)
	defer e.Shutdown()

	var deltas []float64
	e.gameInstance.FnUpdate = func(dt float64) error {
		deltas = append(deltas, dt)
		return nil
	}
	p.onPump = func(n int) {
		switch n {
		case 2:
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{}})
		case 3:
			time.Sleep(300 * time.Millisecond)
		case 4:
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{WindowWidth: 320, WindowHeight: 200}})
		}
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if len(deltas) != 2 {
		t.Fatalf("updates = %d", len(deltas))
	}
	if deltas[1] >= 0.25 {
		t.Errorf("first delta after resume = %.3fs, includes the suspended time", deltas[1])
	}
}

func TestUpdateErrorStops(t *testing.T) {
	e, _, _, _ := newTestEngine(t, 10)
	defer e.Shutdown()

	boom := errors.New("boom")
	e.gameInstance.FnUpdate = func(float64) error { return boom }
	if err := e.Run(); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunBeforeInitialize(t *testing.T) {
	g := &Game{ApplicationConfig: NewApplicationConfig(config.Default(), "")}
	e := NewWithPlatform(g, &fakePlatform{}, &nullBackend{})
	if err := e.Run(); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("err = %v", err)
	}
}
