package engine

import (
	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/renderer"
)

type ApplicationConfig struct {
	// The application name used in windowing.
	Name string
	// Window starting width.
	StartWidth int
	// Window starting height.
	StartHeight int
	// Which backend draws the frames.
	Renderer renderer.RendererType
	// Resolved configuration the application starts with.
	Config *config.Config
	// File to watch for live changes. Empty disables reloading.
	ConfigPath string
}

// NewApplicationConfig takes window settings from cfg.
func NewApplicationConfig(cfg *config.Config, path string) *ApplicationConfig {
	return &ApplicationConfig{
		Name:        cfg.Window.Title,
		StartWidth:  cfg.Window.Width,
		StartHeight: cfg.Window.Height,
		Renderer:    renderer.OpenGL,
		Config:      cfg,
		ConfigPath:  path,
	}
}
