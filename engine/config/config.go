package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/engine/math"
	"github.com/YannUFLL/HumanGL/engine/rig"
)

type Log struct {
	Level string `toml:"level"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Camera struct {
	Eye    math.Vec3 `toml:"eye"`
	Target math.Vec3 `toml:"target"`
	FOV    float32   `toml:"fov"`
	Near   float32   `toml:"near"`
	Far    float32   `toml:"far"`
}

// RGB is a colour written as a three element array in [0, 1].
type RGB [3]float32

func (c RGB) Color() math.Color {
	return math.NewColorRGB(c[0], c[1], c[2])
}

func rgbOf(c math.Color) RGB {
	return RGB{c.R, c.G, c.B}
}

type Colors struct {
	Head  RGB `toml:"head"`
	Torso RGB `toml:"torso"`
	Arm   RGB `toml:"arm"`
	Leg   RGB `toml:"leg"`
}

// Rig converts the configured colours to the assembler's palette.
func (c Colors) Rig() rig.Colors {
	return rig.Colors{
		Head:  c.Head.Color(),
		Torso: c.Torso.Color(),
		Arm:   c.Arm.Color(),
		Leg:   c.Leg.Color(),
	}
}

type Animation struct {
	Mode   rig.Mode `toml:"mode"`
	Paused bool     `toml:"paused"`
}

type Capture struct {
	Dir         string  `toml:"dir"`
	Format      string  `toml:"format"`
	Frames      int     `toml:"frames"`
	FPS         float64 `toml:"fps"`
	Start       float64 `toml:"start"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Supersample int     `toml:"supersample"`
	Workers     int     `toml:"workers"`

	// HUD draws the mode and time onto each frame. Setting Font implies it.
	HUD  bool   `toml:"hud"`
	Font string `toml:"font"`
}

// Config is the whole HumanGL configuration file.
type Config struct {
	Log       Log        `toml:"log"`
	Window    Window     `toml:"window"`
	Camera    Camera     `toml:"camera"`
	Rig       rig.Params `toml:"rig"`
	Colors    Colors     `toml:"colors"`
	Animation Animation  `toml:"animation"`
	Capture   Capture    `toml:"capture"`
}

func Default() *Config {
	colors := rig.DefaultColors()
	return &Config{
		Log: Log{Level: "info"},
		Window: Window{
			Title:  "HumanGL",
			Width:  800,
			Height: 600,
		},
		Camera: Camera{
			Eye:    math.Vec3{2.5, 2.0, 4.0},
			Target: math.Vec3{0, 0, 0},
			FOV:    60,
			Near:   0.1,
			Far:    100,
		},
		Rig: rig.DefaultParams(),
		Colors: Colors{
			Head:  rgbOf(colors.Head),
			Torso: rgbOf(colors.Torso),
			Arm:   rgbOf(colors.Arm),
			Leg:   rgbOf(colors.Leg),
		},
		Animation: Animation{Mode: rig.ModeWalk},
		Capture: Capture{
			Dir:         "frames",
			Format:      "png",
			Frames:      60,
			FPS:         30,
			Width:       320,
			Height:      240,
			Supersample: 1,
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve replaces unusable values with defaults and clamps the rig
// dimensions to the ranges allowed at runtime.
func (c *Config) Resolve() error {
	d := Default()

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}

	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = d.Camera.FOV
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = d.Camera.Near
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = c.Camera.Near + d.Camera.Far
	}
	if c.Camera.Eye.Sub(c.Camera.Target).Len() < math.K_FLOAT_EPSILON {
		c.Camera.Eye, c.Camera.Target = d.Camera.Eye, d.Camera.Target
	}

	c.Rig = c.Rig.Clamped()

	cp := &c.Capture
	cp.Format = strings.ToLower(strings.TrimPrefix(cp.Format, "."))
	switch cp.Format {
	case "":
		cp.Format = d.Capture.Format
	case "png", "webp", "tga":
	default:
		return fmt.Errorf("capture format %q: %w", cp.Format, core.ErrUnknownFormat)
	}
	if cp.Dir == "" {
		cp.Dir = d.Capture.Dir
	}
	if cp.Frames <= 0 {
		cp.Frames = d.Capture.Frames
	}
	if cp.FPS <= 0 {
		cp.FPS = d.Capture.FPS
	}
	if cp.Start < 0 {
		cp.Start = 0
	}
	if cp.Width <= 0 || cp.Height <= 0 {
		cp.Width, cp.Height = d.Capture.Width, d.Capture.Height
	}
	cp.Supersample = math.Clamp(cp.Supersample, 1, 4)
	if cp.Workers <= 0 {
		cp.Workers = runtime.NumCPU()
	}
	return nil
}

// Encode writes the configuration as TOML, for -dump-config.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	return enc.Encode(c)
}
