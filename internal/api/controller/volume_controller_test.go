package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
)

func volumeRouter(rt runtime.ContainerRuntime, store cache.ResponseCache) *gin.Engine {
	r := gin.New()
	vc := NewVolumeController(rt, store)
	r.GET("/volumes", vc.AllVolumes)
	r.POST("/volumes", vc.CreateVolume)
	r.DELETE("/volumes/:name", vc.RemoveVolume)
	return r
}

func TestVolumeController_CreateAndList(t *testing.T) {
	rt := runtime.NewMemoryRuntime()
	store := cache.NewStore()
	_ = store.Set(SystemInfoCacheKey, "cached", time.Minute)
	r := volumeRouter(rt, store)

	body, _ := json.Marshal(map[string]string{"name": "pgdata"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/volumes", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := store.Get(SystemInfoCacheKey); ok {
		t.Error("expected system info cache to be invalidated")
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/volumes", nil)
	r.ServeHTTP(w, req)

	var volumes []runtime.VolumeInfo
	_ = json.Unmarshal(w.Body.Bytes(), &volumes)
	if len(volumes) != 1 || volumes[0].Name != "pgdata" {
		t.Errorf("expected pgdata volume, got %v", volumes)
	}
	// local is the default driver
	if volumes[0].Driver != "local" {
		t.Errorf("expected local driver, got %q", volumes[0].Driver)
	}
}

func TestVolumeController_Create_MissingName(t *testing.T) {
	r := volumeRouter(runtime.NewMemoryRuntime(), cache.NewStore())

	body, _ := json.Marshal(map[string]string{"driver": "local"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/volumes", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestVolumeController_Remove(t *testing.T) {
	rt := runtime.NewMemoryRuntime()
	_, _ = rt.CreateVolume(context.Background(), "pgdata", "local", nil)
	r := volumeRouter(rt, cache.NewStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/volumes/pgdata", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
