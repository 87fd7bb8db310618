package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	cfg := config.Default()
	cfg.Capture.Dir = t.TempDir()
	cfg.Capture.Frames = 4
	cfg.Capture.Width = 32
	cfg.Capture.Height = 24
	cfg.Capture.Workers = 2
	cfg.Animation.Mode = rig.ModeWalk
	if err := cfg.Resolve(); err != nil {
		t.Fatal(err)
	}
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return opts
}

func TestConfigEnablesHUD(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		want bool
	}{
		{"default", "", false},
		{"hud key", "[capture]\nhud = true\n", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tc.toml))
			if err != nil {
				t.Fatal(err)
			}
			cfg.Capture.Width, cfg.Capture.Height = 32, 24
			opts, err := OptionsFromConfig(cfg)
			if err != nil {
				t.Fatal(err)
			}
			if opts.HUD != tc.want {
				t.Fatalf("HUD = %v, want %v", opts.HUD, tc.want)
			}
			wk, err := newWorker(opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := wk.backend.HUD() != nil; got != tc.want {
				t.Errorf("worker has HUD = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRunWritesFramesAndManifest(t *testing.T) {
	opts := testOptions(t)
	opts.HUD = true

	m, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(m.RunID); err != nil {
		t.Errorf("run id %q: %v", m.RunID, err)
	}
	if m.Failed() != 0 {
		t.Fatalf("failed frames: %+v", m.Frames)
	}

	for i, fr := range m.Frames {
		if fr.Index != i || fr.Path != opts.FrameName(i) {
			t.Errorf("frame %d = %+v", i, fr)
		}
		if want := float64(i) / 30; fr.Time != want {
			t.Errorf("frame %d time = %v, want %v", i, fr.Time, want)
		}

		f, err := os.Open(filepath.Join(opts.Dir, fr.Path))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if img.Bounds() != image.Rect(0, 0, 32, 24) {
			t.Errorf("frame %d bounds %v", i, img.Bounds())
		}
	}

	disk, err := ReadManifest(filepath.Join(opts.Dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if disk.RunID != m.RunID || disk.Mode != "walk" || len(disk.Frames) != 4 || disk.Format != "png" {
		t.Errorf("manifest on disk = %+v", disk)
	}
}

func TestRunCancelled(t *testing.T) {
	opts := testOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := Run(ctx, opts)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if m.Failed() != opts.Frames {
		t.Errorf("%d of %d frames failed", m.Failed(), opts.Frames)
	}
	if _, err := os.Stat(filepath.Join(opts.Dir, ManifestName)); err != nil {
		t.Errorf("manifest not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(opts.Dir, opts.FrameName(0))); !os.IsNotExist(err) {
		t.Errorf("frame written after cancel: %v", err)
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	opts := testOptions(t)
	opts.FPS = 0
	if _, err := Run(context.Background(), opts); err == nil {
		t.Fatal("zero fps accepted")
	}
}

func TestRunMissingHUDFont(t *testing.T) {
	opts := testOptions(t)
	opts.Frames = 1
	opts.HUDFont = filepath.Join(t.TempDir(), "missing.fnt")
	m, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if m.Failed() != 1 {
		t.Fatalf("frames = %+v", m.Frames)
	}
}

func TestFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for _, name := range []string{"png", ".webp", "TGA"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := f.Encode(&buf, img); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty output", f)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, core.ErrUnknownFormat) {
		t.Errorf("err = %v", err)
	}
}
