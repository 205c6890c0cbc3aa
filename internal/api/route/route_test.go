package route

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bassista/dockhand/internal/app"
	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/config"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
)

func testApp(t *testing.T) *app.App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			RequestTimeout:     5 * time.Second,
			CORSAllowedOrigins: "*",
		},
		Cache: config.CacheConfig{
			SystemInfoTTL: 30 * time.Second,
			SweepInterval: 60 * time.Second,
		},
	}
	a, err := app.New(cfg, cache.NewStore(), runtime.NewMemoryRuntime())
	if err != nil {
		t.Fatalf("cannot build app: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, testApp(t))
	return r
}

func TestSetupRoutes_Health(t *testing.T) {
	r := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSetupRoutes_Metrics(t *testing.T) {
	r := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSetupRoutes_APISurface(t *testing.T) {
	r := setupTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/containers"},
		{http.MethodGet, "/api/system"},
		{http.MethodGet, "/api/networks"},
		{http.MethodGet, "/api/volumes"},
		{http.MethodGet, "/api/images"},
	}

	for _, p := range paths {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(p.method, p.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s %s: expected 200, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestSetupRoutes_UnknownPath(t *testing.T) {
	r := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
