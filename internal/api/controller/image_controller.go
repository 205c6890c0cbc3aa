package controller

import (
	"net/http"

	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
)

// ImageController handles image-related HTTP endpoints. The surface is
// read-only; image lifecycle (pull, build, delete) is managed outside
// this service.
type ImageController struct {
	rt runtime.ContainerRuntime
}

func NewImageController(rt runtime.ContainerRuntime) *ImageController {
	return &ImageController{rt: rt}
}

// AllImages handles GET /images.
func (ic *ImageController) AllImages(c *gin.Context) {
	images, err := ic.rt.Images(c.Request.Context())
	if err != nil {
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}
