package route

import (
	"time"

	"github.com/bassista/dockhand/internal/api/controller"
	"github.com/bassista/dockhand/internal/api/middleware"
	"github.com/bassista/dockhand/internal/app"
	"github.com/gin-gonic/gin"
)

func NewContainerRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	cc := controller.NewContainerController(appCtx.Runtime, appCtx.Engine, appCtx.Cache)
	compose := controller.NewComposeController(appCtx.Runtime)

	group.Use(middleware.RequestTimeout(timeout))

	group.GET("containers", cc.AllContainers)
	group.GET("containers/:name", cc.ContainerDetails)
	group.PUT("containers/:name", cc.UpdateContainer)
	group.DELETE("containers/:name", cc.RemoveContainer)
	group.POST("containers/:name/start", cc.StartContainer)
	group.POST("containers/:name/stop", cc.StopContainer)
	group.POST("containers/:name/restart", cc.RestartContainer)
	group.POST("containers/:name/rename", cc.RenameContainer)
	group.POST("containers/:name/volumes", cc.AttachVolume)
	group.GET("containers/:name/stats", cc.ContainerStats)
	group.POST("containers/:name/networks/:network", cc.ConnectNetwork)
	group.DELETE("containers/:name/networks/:network", cc.DisconnectNetwork)
	group.GET("containers/:name/compose", compose.ComposeDetails)
}
