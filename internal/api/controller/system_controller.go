package controller

import (
	"context"
	"net/http"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/config"
	"github.com/bassista/dockhand/internal/engine"
	"github.com/bassista/dockhand/internal/logger"
	"github.com/gin-gonic/gin"
)

// SystemInfoProvider is the engine surface the system controller needs.
type SystemInfoProvider interface {
	SystemInfo(ctx context.Context) (*engine.SystemInfo, error)
}

// SystemController serves the aggregated daemon view. The aggregation
// fans out over every running container, so responses are cached for a
// short window to keep a dashboard poll loop from hammering the daemon.
type SystemController struct {
	engine SystemInfoProvider
	cache  cache.ResponseCache
	cfg    *config.Config
}

func NewSystemController(eng SystemInfoProvider, store cache.ResponseCache, cfg *config.Config) *SystemController {
	return &SystemController{engine: eng, cache: store, cfg: cfg}
}

// SystemInfo handles GET /system.
func (sc *SystemController) SystemInfo(c *gin.Context) {
	if raw, ok := sc.cache.Get(SystemInfoCacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	info, err := sc.engine.SystemInfo(c.Request.Context())
	if err != nil {
		logger.WithComponent("system-controller").Errorf("failed to aggregate system info: %v", err)
		handleRuntimeError(c, err)
		return
	}

	if err := sc.cache.Set(SystemInfoCacheKey, info, sc.cfg.Cache.SystemInfoTTL); err != nil {
		logger.WithComponent("system-controller").Warnf("failed to cache system info: %v", err)
	}
	c.JSON(http.StatusOK, info)
}
