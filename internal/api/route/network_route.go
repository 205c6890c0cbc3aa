package route

import (
	"time"

	"github.com/bassista/dockhand/internal/api/controller"
	"github.com/bassista/dockhand/internal/api/middleware"
	"github.com/bassista/dockhand/internal/app"
	"github.com/gin-gonic/gin"
)

func NewNetworkRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	nc := controller.NewNetworkController(appCtx.Runtime, appCtx.Cache)

	group.Use(middleware.RequestTimeout(timeout))

	group.GET("networks", nc.AllNetworks)
	group.POST("networks", nc.CreateNetwork)
	group.DELETE("networks/:name", nc.RemoveNetwork)
}
