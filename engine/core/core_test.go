package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func withEvents(t *testing.T) {
	t.Helper()
	if !EventSystemInitialize() {
		t.Fatal("event system already initialized")
	}
	t.Cleanup(func() { _ = EventSystemShutdown() })
}

func withInput(t *testing.T) {
	t.Helper()
	if err := InputInitialize(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = InputShutdown() })
}

func TestEventFireStopsWhenHandled(t *testing.T) {
	withEvents(t)

	var calls []string
	EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) bool {
		calls = append(calls, "first")
		return true
	})
	EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) bool {
		calls = append(calls, "second")
		return false
	})

	if !EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 800}}) {
		t.Fatal("event not reported handled")
	}
	if len(calls) != 1 || calls[0] != "first" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestEventUnregister(t *testing.T) {
	withEvents(t)

	n := 0
	id := EventRegister(EVENT_CODE_APPLICATION_QUIT, func(EventContext) bool { n++; return false })
	if id == 0 {
		t.Fatal("register returned id 0")
	}
	EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
	if !EventUnregister(EVENT_CODE_APPLICATION_QUIT, id) {
		t.Fatal("unregister failed")
	}
	EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
	if n != 1 {
		t.Fatalf("listener called %d times, want 1", n)
	}
	if EventUnregister(EVENT_CODE_APPLICATION_QUIT, id) {
		t.Fatal("second unregister succeeded")
	}
}

func TestEventsBeforeInitialize(t *testing.T) {
	if EventRegister(EVENT_CODE_KEY_PRESSED, func(EventContext) bool { return true }) != 0 {
		t.Fatal("register succeeded without an event system")
	}
	if EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED}) {
		t.Fatal("fire succeeded without an event system")
	}
}

func TestInputEdgeDetection(t *testing.T) {
	withEvents(t)
	withInput(t)

	var pressed []KeyCode
	EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) bool {
		pressed = append(pressed, ctx.Data.(*KeyEvent).KeyCode)
		return false
	})

	_ = InputProcessKey(KEY_SPACE, true)
	if !InputIsKeyPressed(KEY_SPACE) {
		t.Fatal("space not reported pressed on the first frame")
	}
	_ = InputUpdate(0)
	if InputIsKeyPressed(KEY_SPACE) {
		t.Fatal("held space reported pressed again")
	}
	if !InputIsKeyDown(KEY_SPACE) || !InputWasKeyDown(KEY_SPACE) {
		t.Fatal("held space not reported down")
	}

	// Repeated press without release fires no extra event.
	_ = InputProcessKey(KEY_SPACE, true)
	if len(pressed) != 1 || pressed[0] != KEY_SPACE {
		t.Fatalf("pressed events = %v", pressed)
	}

	_ = InputProcessKey(KEY_SPACE, false)
	_ = InputUpdate(0)
	_ = InputProcessKey(KEY_SPACE, true)
	if !InputIsKeyPressed(KEY_SPACE) {
		t.Fatal("second press not detected")
	}
}

func TestInputProcessKeyWithoutInitialize(t *testing.T) {
	if err := InputProcessKey(KEY_A, true); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
	if InputIsKeyDown(KEY_A) {
		t.Fatal("key down without input system")
	}
}

func TestClock(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	c := &Clock{now: func() time.Time { return now }}

	c.Update()
	if c.Elapsed() != 0 {
		t.Fatalf("unstarted clock elapsed = %v", c.Elapsed())
	}

	c.Start()
	now = base.Add(1500 * time.Millisecond)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Fatalf("elapsed = %v, want 1.5", c.Elapsed())
	}

	c.Stop()
	now = base.Add(10 * time.Second)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Fatalf("stopped clock advanced to %v", c.Elapsed())
	}
}

func TestFrameMetrics(t *testing.T) {
	fm := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		fm.Update(0.0625)
	}
	fps, ms := fm.Frame()
	if fps != 17 {
		t.Fatalf("fps = %v, want 17", fps)
	}
	if ms != 62.5 {
		t.Fatalf("frame time = %v, want 62.5", ms)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(nopWriter{})

	if err := SetLogLevel("warn"); err != nil {
		t.Fatal(err)
	}
	LogInfo("hidden")
	LogWarn("shown %d", 1)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown 1") {
		t.Fatalf("log output = %q", buf.String())
	}
	if err := SetLogLevel("loud"); err == nil {
		t.Fatal("invalid level accepted")
	}
	_ = SetLogLevel("info")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestFrameMetricsWindowRolls(t *testing.T) {
	fm := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		fm.Update(1)
	}
	for i := 0; i < int(AVG_COUNT); i++ {
		fm.Update(0.25)
	}
	if ms := fm.FrameTime(); ms != 250 {
		t.Fatalf("frame time = %v, want the last %d frames only", ms, AVG_COUNT)
	}
}
