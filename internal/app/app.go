package app

import (
	"context"
	"errors"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/config"
	"github.com/bassista/dockhand/internal/engine"
	"github.com/bassista/dockhand/internal/runtime"
)

// App is the application container (immutable dependencies + lifecycle
// context). It is not a request context; handlers should still use
// gin's request context.
type App struct {
	Config  *config.Config
	Cache   *cache.Store
	Runtime runtime.ContainerRuntime
	Engine  *engine.Engine

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, store *cache.Store, rt runtime.ContainerRuntime) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if store == nil {
		return nil, errors.New("cache store is nil")
	}
	if rt == nil {
		return nil, errors.New("runtime is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Cache:   store,
		Runtime: rt,
		Engine:  engine.New(rt),
		BaseCtx: ctx,
		Cancel:  cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers launches the background goroutines owned by the app.
func (a *App) StartWatchers() {
	cache.StartSweeper(a.BaseCtx, a.Cache, a.Config.Cache.SweepInterval)
}
