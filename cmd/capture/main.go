/*
capture renders the humanoid offscreen and writes numbered frames plus a
manifest, for turning into a video or checking a pose by eye.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YannUFLL/HumanGL/engine/capture"
	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	out := flag.String("out", "", "output directory (overrides capture.dir)")
	frames := flag.Int("frames", 0, "number of frames (overrides capture.frames)")
	fps := flag.Float64("fps", 0, "frames per second of animation time")
	start := flag.Float64("start", -1, "animation time of the first frame")
	format := flag.String("format", "", "png, webp or tga")
	mode := flag.String("mode", "", "idle, walk or jump")
	size := flag.String("size", "", "output size as WIDTHxHEIGHT")
	supersample := flag.Int("supersample", 0, "render at N times the size and downsample")
	workers := flag.Int("workers", 0, "parallel renderers (default: one per CPU)")
	hud := flag.Bool("hud", false, "draw the mode and time onto each frame (overrides capture.hud)")
	font := flag.String("font", "", "BMFont or TrueType file for the HUD")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			core.LogFatal("%s", err)
		}
		cfg = loaded
	}
	if err := core.SetLogLevel(cfg.Log.Level); err != nil {
		core.LogWarn("%s", err)
	}

	if *out != "" {
		cfg.Capture.Dir = *out
	}
	if *frames > 0 {
		cfg.Capture.Frames = *frames
	}
	if *fps > 0 {
		cfg.Capture.FPS = *fps
	}
	if *start >= 0 {
		cfg.Capture.Start = *start
	}
	if *format != "" {
		cfg.Capture.Format = *format
	}
	if *mode != "" {
		m, err := rig.ParseMode(*mode)
		if err != nil {
			core.LogFatal("%s", err)
		}
		cfg.Animation.Mode = m
	}
	if *size != "" {
		if _, err := fmt.Sscanf(*size, "%dx%d", &cfg.Capture.Width, &cfg.Capture.Height); err != nil {
			core.LogFatal("size %q: want WIDTHxHEIGHT", *size)
		}
	}
	if *supersample > 0 {
		cfg.Capture.Supersample = *supersample
	}
	if *workers > 0 {
		cfg.Capture.Workers = *workers
	}
	if *hud {
		cfg.Capture.HUD = true
	}
	if *font != "" {
		cfg.Capture.Font = *font
	}
	if err := cfg.Resolve(); err != nil {
		core.LogFatal("%s", err)
	}

	opts, err := capture.OptionsFromConfig(cfg)
	if err != nil {
		core.LogFatal("%s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest, err := capture.Run(ctx, opts)
	if err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
	if manifest.Failed() > 0 {
		os.Exit(1)
	}
}
