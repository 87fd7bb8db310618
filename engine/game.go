package engine

import (
	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/renderer"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnOnConfig        OnConfig
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(r *renderer.Renderer, deltaTime float64) error
type OnResize func(width, height int) error

// OnConfig receives a configuration reloaded from disk between frames.
type OnConfig func(cfg *config.Config) error
type Shutdown func() error
