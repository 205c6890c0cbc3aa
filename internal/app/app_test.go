package app

import (
	"testing"
	"time"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/config"
	"github.com/bassista/dockhand/internal/runtime"
)

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			SystemInfoTTL: 30 * time.Second,
			SweepInterval: 60 * time.Second,
		},
	}
}

func TestNew(t *testing.T) {
	app, err := New(testConfig(), cache.NewStore(), runtime.NewMemoryRuntime())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Engine == nil {
		t.Error("expected engine to be constructed")
	}
	if app.BaseCtx == nil {
		t.Error("expected base context to be set")
	}
	app.Shutdown()
}

func TestNew_NilDependencies(t *testing.T) {
	store := cache.NewStore()
	rt := runtime.NewMemoryRuntime()

	if _, err := New(nil, store, rt); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := New(testConfig(), nil, rt); err == nil {
		t.Error("expected error for nil cache store")
	}
	if _, err := New(testConfig(), store, nil); err == nil {
		t.Error("expected error for nil runtime")
	}
}

func TestShutdown_CancelsBaseContext(t *testing.T) {
	app, err := New(testConfig(), cache.NewStore(), runtime.NewMemoryRuntime())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	app.Shutdown()
	select {
	case <-app.BaseCtx.Done():
	case <-time.After(time.Second):
		t.Error("expected base context to be cancelled")
	}

	// shutting down twice must not panic
	app.Shutdown()
}

func TestShutdown_NilApp(t *testing.T) {
	var app *App
	app.Shutdown()
}
