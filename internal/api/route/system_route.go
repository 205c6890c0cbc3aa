package route

import (
	"time"

	"github.com/bassista/dockhand/internal/api/controller"
	"github.com/bassista/dockhand/internal/api/middleware"
	"github.com/bassista/dockhand/internal/app"
	"github.com/gin-gonic/gin"
)

func NewSystemRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	sc := controller.NewSystemController(appCtx.Engine, appCtx.Cache, appCtx.Config)

	group.Use(middleware.RequestTimeout(timeout))

	group.GET("system", sc.SystemInfo)
}
