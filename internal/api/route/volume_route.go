package route

import (
	"time"

	"github.com/bassista/dockhand/internal/api/controller"
	"github.com/bassista/dockhand/internal/api/middleware"
	"github.com/bassista/dockhand/internal/app"
	"github.com/gin-gonic/gin"
)

func NewVolumeRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	vc := controller.NewVolumeController(appCtx.Runtime, appCtx.Cache)

	group.Use(middleware.RequestTimeout(timeout))

	group.GET("volumes", vc.AllVolumes)
	group.POST("volumes", vc.CreateVolume)
	group.DELETE("volumes/:name", vc.RemoveVolume)
}
