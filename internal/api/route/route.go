package route

import (
	"github.com/bassista/dockhand/internal/api/controller"
	"github.com/bassista/dockhand/internal/api/middleware"
	"github.com/bassista/dockhand/internal/app"
	"github.com/bassista/dockhand/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, appCtx *app.App) {
	r.Use(middleware.Metrics())
	r.Use(middleware.HoneybadgerMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", controller.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiRouter := r.Group("/api")
	timeout := appCtx.Config.Server.RequestTimeout

	NewContainerRouter(timeout, apiRouter, appCtx)
	NewSystemRouter(timeout, apiRouter, appCtx)
	NewNetworkRouter(timeout, apiRouter, appCtx)
	NewVolumeRouter(timeout, apiRouter, appCtx)
	NewImageRouter(timeout, apiRouter, appCtx)
}
