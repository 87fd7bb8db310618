package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/YannUFLL/HumanGL/engine/renderer"
	"github.com/YannUFLL/HumanGL/engine/renderer/software"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

const ManifestName = "manifest.json"

// Options holds everything a capture run needs. Workers render independently,
// each with its own backend, camera and transform stack.
type Options struct {
	Dir         string
	Format      Format
	Frames      int
	FPS         float64
	Start       float64
	Width       int
	Height      int
	Supersample int
	Workers     int

	Mode   rig.Mode
	Paused bool
	Params rig.Params
	Colors rig.Colors

	Eye, Target    math.Vec3
	FOV, Near, Far float32

	HUD           bool
	HUDFont       string
	ProgressEvery time.Duration
}

// OptionsFromConfig maps a resolved configuration to capture options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	format, err := ParseFormat(cfg.Capture.Format)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Dir:         cfg.Capture.Dir,
		Format:      format,
		Frames:      cfg.Capture.Frames,
		FPS:         cfg.Capture.FPS,
		Start:       cfg.Capture.Start,
		Width:       cfg.Capture.Width,
		Height:      cfg.Capture.Height,
		Supersample: cfg.Capture.Supersample,
		Workers:     cfg.Capture.Workers,
		Mode:        cfg.Animation.Mode,
		Paused:      cfg.Animation.Paused,
		Params:      cfg.Rig,
		Colors:      cfg.Colors.Rig(),
		Eye:         cfg.Camera.Eye,
		Target:      cfg.Camera.Target,
		FOV:         cfg.Camera.FOV,
		Near:        cfg.Camera.Near,
		Far:         cfg.Camera.Far,
		HUD:         cfg.Capture.HUD,
		HUDFont:     cfg.Capture.Font,
	}, nil
}

// FrameTime is the animation time of frame i.
func (o Options) FrameTime(i int) float64 {
	return o.Start + float64(i)/o.FPS
}

func (o Options) FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.%s", i, o.Format.Ext())
}

func (o Options) validate() error {
	if o.Frames <= 0 {
		return fmt.Errorf("capture: frame count must be positive, got %d", o.Frames)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("capture: fps must be positive, got %v", o.FPS)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("capture: invalid size %dx%d", o.Width, o.Height)
	}
	if o.Dir == "" {
		return fmt.Errorf("capture: no output directory")
	}
	return nil
}

// Run renders opts.Frames frames with a pool of workers and writes them plus
// a manifest into opts.Dir. A cancelled ctx stops workers between frames; the
// manifest is still written, with the skipped frames marked failed, and the
// context error is returned.
func Run(ctx context.Context, opts Options) (*Manifest, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Workers > opts.Frames {
		opts.Workers = opts.Frames
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = 2 * time.Second
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, err
	}

	manifest := &Manifest{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Mode:      opts.Mode.String(),
		Paused:    opts.Paused,
		FPS:       opts.FPS,
		Start:     opts.Start,
		Width:     opts.Width,
		Height:    opts.Height,
		Format:    opts.Format.Ext(),
		Frames:    make([]FrameResult, opts.Frames),
	}
	core.LogInfo("capture %s: %d %s frames at %dx%d with %d workers",
		manifest.RunID, opts.Frames, opts.Format, opts.Width, opts.Height, opts.Workers)

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(opts.ProgressEvery)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					core.LogInfo("[%d/%d] %.1f frames/sec", p, opts.Frames, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, opts.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wk, err := newWorker(opts)
			for idx := range frameChan {
				switch {
				case err != nil:
					manifest.Frames[idx] = failed(opts, idx, err)
				case ctx.Err() != nil:
					manifest.Frames[idx] = failed(opts, idx, ctx.Err())
				default:
					manifest.Frames[idx] = wk.frame(idx)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < opts.Frames; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	if err := WriteManifest(filepath.Join(opts.Dir, ManifestName), manifest); err != nil {
		return manifest, fmt.Errorf("writing manifest: %w", err)
	}
	if failures := manifest.Failed(); failures > 0 {
		core.LogWarn("capture %s: %d of %d frames failed", manifest.RunID, failures, opts.Frames)
	}
	core.LogInfo("capture %s finished in %s", manifest.RunID, time.Since(start).Round(time.Millisecond))
	return manifest, ctx.Err()
}

func failed(opts Options, idx int, err error) FrameResult {
	return FrameResult{
		Index: idx,
		Time:  opts.FrameTime(idx),
		Error: err.Error(),
	}
}

type worker struct {
	opts      Options
	backend   *software.Backend
	renderer  *renderer.Renderer
	assembler *rig.Assembler
	stack     *math.TransformStack
}

func newWorker(opts Options) (*worker, error) {
	backend := software.New(opts.Supersample)
	if opts.HUD || opts.HUDFont != "" {
		hud := software.NewHUD()
		if opts.HUDFont != "" {
			var err error
			if hud, err = software.LoadHUD(opts.HUDFont); err != nil {
				return nil, err
			}
		}
		backend.SetHUD(hud)
	}

	camera := renderer.DefaultCamera()
	if opts.FOV > 0 {
		camera = renderer.NewCamera(opts.Eye, opts.Target, opts.FOV, opts.Near, opts.Far)
	}
	r := renderer.New(backend, camera)
	if err := r.Initialize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return &worker{
		opts:      opts,
		backend:   backend,
		renderer:  r,
		assembler: rig.NewAssembler(),
		stack:     math.NewTransformStack(),
	}, nil
}

func (w *worker) frame(idx int) FrameResult {
	t := w.opts.FrameTime(idx)
	res := FrameResult{Index: idx, Time: t}

	if hud := w.backend.HUD(); hud != nil {
		hud.SetLines(
			fmt.Sprintf("mode: %s%s", w.opts.Mode, pausedSuffix(w.opts.Paused)),
			fmt.Sprintf("t = %.2fs", t),
		)
	}

	err := w.renderer.DrawFrame(func(sink rig.Sink) {
		w.assembler.DrawFrame(w.stack, w.opts.Params, w.opts.Colors, w.opts.Mode, w.opts.Paused, t, sink)
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	name := w.opts.FrameName(idx)
	if err := w.write(filepath.Join(w.opts.Dir, name)); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Path = name
	res.Success = true
	return res
}

func (w *worker) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.opts.Format.Encode(f, w.backend.Image()); err != nil {
		f.Close()
		return fmt.Errorf("%s encode: %w", w.opts.Format, err)
	}
	return f.Close()
}

func pausedSuffix(paused bool) string {
	if paused {
		return " (paused)"
	}
	return ""
}
