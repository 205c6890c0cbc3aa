package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/config"
	"github.com/bassista/dockhand/internal/engine"
	"github.com/gin-gonic/gin"
)

// mockSystemInfoProvider implements SystemInfoProvider for testing
type mockSystemInfoProvider struct {
	info  *engine.SystemInfo
	err   error
	calls int
}

func (m *mockSystemInfoProvider) SystemInfo(ctx context.Context) (*engine.SystemInfo, error) {
	m.calls++
	return m.info, m.err
}

func systemRouter(provider SystemInfoProvider, store cache.ResponseCache) *gin.Engine {
	cfg := &config.Config{Cache: config.CacheConfig{SystemInfoTTL: 30 * time.Second}}
	r := gin.New()
	sc := NewSystemController(provider, store, cfg)
	r.GET("/system", sc.SystemInfo)
	return r
}

func TestSystemController_ColdCacheFetchesAndStores(t *testing.T) {
	provider := &mockSystemInfoProvider{info: &engine.SystemInfo{ContainersRunning: 3, ServerVersion: "27.0.1"}}
	store := cache.NewStore()
	r := systemRouter(provider, store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/system", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var info engine.SystemInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if info.ContainersRunning != 3 {
		t.Errorf("expected 3 running containers, got %d", info.ContainersRunning)
	}
	if _, ok := store.Get(SystemInfoCacheKey); !ok {
		t.Error("expected response to be cached")
	}
}

func TestSystemController_WarmCacheSkipsEngine(t *testing.T) {
	provider := &mockSystemInfoProvider{info: &engine.SystemInfo{ContainersRunning: 3}}
	store := cache.NewStore()
	r := systemRouter(provider, store)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/system", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}

	if provider.calls != 1 {
		t.Errorf("expected 1 engine call across 3 requests, got %d", provider.calls)
	}
}

func TestSystemController_ExpiredCacheRefetches(t *testing.T) {
	provider := &mockSystemInfoProvider{info: &engine.SystemInfo{}}
	store := cache.NewStore()
	_ = store.Set(SystemInfoCacheKey, "stale", -time.Second)
	r := systemRouter(provider, store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/system", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if provider.calls != 1 {
		t.Errorf("expected engine to be called on expired cache, got %d calls", provider.calls)
	}
}

func TestSystemController_EngineFailure(t *testing.T) {
	provider := &mockSystemInfoProvider{err: errors.New("daemon unreachable")}
	r := systemRouter(provider, cache.NewStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/system", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
