package controller

import (
	"net/http"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// VolumeController handles volume-related HTTP endpoints.
type VolumeController struct {
	rt       runtime.ContainerRuntime
	cache    cache.ResponseCache
	validate *validator.Validate
}

func NewVolumeController(rt runtime.ContainerRuntime, store cache.ResponseCache) *VolumeController {
	return &VolumeController{rt: rt, cache: store, validate: validator.New()}
}

// AllVolumes handles GET /volumes.
func (vc *VolumeController) AllVolumes(c *gin.Context) {
	volumes, err := vc.rt.Volumes(c.Request.Context())
	if err != nil {
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, volumes)
}

type createVolumeRequest struct {
	Name       string            `json:"name" validate:"required"`
	Driver     string            `json:"driver"`
	DriverOpts map[string]string `json:"driver_opts"`
}

// CreateVolume handles POST /volumes.
func (vc *VolumeController) CreateVolume(c *gin.Context) {
	var req createVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := vc.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Driver == "" {
		req.Driver = "local"
	}

	vol, err := vc.rt.CreateVolume(c.Request.Context(), req.Name, req.Driver, req.DriverOpts)
	if err != nil {
		handleRuntimeError(c, err)
		return
	}
	vc.cache.Delete(SystemInfoCacheKey)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "volume": vol})
}

// RemoveVolume handles DELETE /volumes/:name.
func (vc *VolumeController) RemoveVolume(c *gin.Context) {
	name := c.Param("name")
	force := c.Query("force") == "true"
	if err := vc.rt.RemoveVolume(c.Request.Context(), name, force); err != nil {
		handleRuntimeError(c, err)
		return
	}
	vc.cache.Delete(SystemInfoCacheKey)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "volume " + name + " removed"})
}
