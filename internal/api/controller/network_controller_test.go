package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
)

func networkRouter(rt runtime.ContainerRuntime) *gin.Engine {
	r := gin.New()
	nc := NewNetworkController(rt, cache.NewStore())
	r.GET("/networks", nc.AllNetworks)
	r.POST("/networks", nc.CreateNetwork)
	r.DELETE("/networks/:name", nc.RemoveNetwork)
	return r
}

func TestNetworkController_CreateDefaultsToBridge(t *testing.T) {
	rt := runtime.NewMemoryRuntime()
	r := networkRouter(rt)

	body, _ := json.Marshal(map[string]string{"name": "frontend"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/networks", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/networks", nil)
	r.ServeHTTP(w, req)

	var networks []runtime.NetworkInfo
	_ = json.Unmarshal(w.Body.Bytes(), &networks)
	if len(networks) != 1 || networks[0].Driver != "bridge" {
		t.Errorf("expected one bridge network, got %v", networks)
	}
}

func TestNetworkController_Create_InvalidDriver(t *testing.T) {
	r := networkRouter(runtime.NewMemoryRuntime())

	body, _ := json.Marshal(map[string]string{"name": "frontend", "driver": "quantum"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/networks", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestNetworkController_Create_MissingName(t *testing.T) {
	r := networkRouter(runtime.NewMemoryRuntime())

	body, _ := json.Marshal(map[string]string{"driver": "bridge"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/networks", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
