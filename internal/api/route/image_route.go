package route

import (
	"time"

	"github.com/bassista/dockhand/internal/api/controller"
	"github.com/bassista/dockhand/internal/api/middleware"
	"github.com/bassista/dockhand/internal/app"
	"github.com/gin-gonic/gin"
)

func NewImageRouter(timeout time.Duration, group *gin.RouterGroup, appCtx *app.App) {
	ic := controller.NewImageController(appCtx.Runtime)

	group.Use(middleware.RequestTimeout(timeout))

	group.GET("images", ic.AllImages)
}
