package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/engine"
	"github.com/bassista/dockhand/internal/logger"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SystemInfoCacheKey is the response-cache key of the aggregated system
// view. Every mutating operation invalidates it.
const SystemInfoCacheKey = "docker:system_info"

// ReconfigureEngine is the engine surface the container controller needs.
type ReconfigureEngine interface {
	UpdateContainer(ctx context.Context, nameOrID string, req engine.UpdateRequest) (*engine.Result, error)
	AttachVolume(ctx context.Context, nameOrID, volumeName, mountPoint string, mode runtime.MountMode) (*engine.Result, error)
	ContainerUsage(ctx context.Context, nameOrID string) (engine.ContainerStats, error)
}

// ContainerController handles container-related HTTP endpoints.
type ContainerController struct {
	rt       runtime.ContainerRuntime
	engine   ReconfigureEngine
	cache    cache.ResponseCache
	validate *validator.Validate
}

func NewContainerController(rt runtime.ContainerRuntime, eng ReconfigureEngine, store cache.ResponseCache) *ContainerController {
	return &ContainerController{
		rt:       rt,
		engine:   eng,
		cache:    store,
		validate: validator.New(),
	}
}

// invalidateSystemInfo drops the cached system view after a mutation.
func (cc *ContainerController) invalidateSystemInfo() {
	cc.cache.Delete(SystemInfoCacheKey)
}

// handleRuntimeError maps engine/runtime error kinds onto HTTP statuses.
func handleRuntimeError(c *gin.Context, err error) {
	var lost *engine.RecreationLostError
	switch {
	case errors.Is(err, runtime.ErrContainerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrAlreadyAttached):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "already_attached"})
	case errors.Is(err, runtime.ErrMalformedMountSpec):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "malformed_mount_spec"})
	case errors.As(err, &lost):
		// Availability-impacting: the old container is gone and the new
		// one never came up. The pre-change snapshot is returned so an
		// operator can recover by hand.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     lost.Error(),
			"kind":      "recreation_lost",
			"container": lost.Name,
			"stage":     lost.Stage,
			"snapshot":  lost.Snapshot,
		})
	case errors.Is(err, runtime.ErrRuntimeUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// AllContainers handles GET /containers.
func (cc *ContainerController) AllContainers(c *gin.Context) {
	all := c.DefaultQuery("all", "true") == "true"
	containers, err := cc.rt.List(c.Request.Context(), all)
	if err != nil {
		logger.WithComponent("container-controller").Errorf("failed to list containers: %v", err)
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, containers)
}

// ContainerDetails handles GET /containers/:name.
func (cc *ContainerController) ContainerDetails(c *gin.Context) {
	name := c.Param("name")
	ins, err := cc.rt.Inspect(c.Request.Context(), name)
	if err != nil {
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          ins.ID,
		"name":        ins.Name,
		"image":       ins.Spec.Image,
		"state":       ins.State,
		"created":     ins.Created,
		"environment": ins.Spec.Env,
		"mounts":      ins.Spec.Mounts,
		"networks":    ins.Spec.Networks,
		"ports":       ins.Spec.Ports,
		"labels":      ins.Labels,
	})
}

// StartContainer handles POST /containers/:name/start.
func (cc *ContainerController) StartContainer(c *gin.Context) {
	name := c.Param("name")
	if err := cc.rt.Start(c.Request.Context(), name); err != nil {
		handleRuntimeError(c, err)
		return
	}
	cc.invalidateSystemInfo()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "container " + name + " started"})
}

// StopContainer handles POST /containers/:name/stop.
func (cc *ContainerController) StopContainer(c *gin.Context) {
	name := c.Param("name")
	if err := cc.rt.Stop(c.Request.Context(), name); err != nil {
		handleRuntimeError(c, err)
		return
	}
	cc.invalidateSystemInfo()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "container " + name + " stopped"})
}

// RestartContainer handles POST /containers/:name/restart.
func (cc *ContainerController) RestartContainer(c *gin.Context) {
	name := c.Param("name")
	if err := cc.rt.Restart(c.Request.Context(), name); err != nil {
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "container " + name + " restarted"})
}

// RemoveContainer handles DELETE /containers/:name.
func (cc *ContainerController) RemoveContainer(c *gin.Context) {
	name := c.Param("name")
	force := c.Query("force") == "true"
	if err := cc.rt.Remove(c.Request.Context(), name, force); err != nil {
		handleRuntimeError(c, err)
		return
	}
	cc.invalidateSystemInfo()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "container " + name + " removed"})
}

type renameRequest struct {
	NewName string `json:"new_name" validate:"required"`
}

// RenameContainer handles POST /containers/:name/rename.
func (cc *ContainerController) RenameContainer(c *gin.Context) {
	name := c.Param("name")
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := cc.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := cc.rt.Rename(c.Request.Context(), name, req.NewName); err != nil {
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "container renamed to " + req.NewName})
}

// UpdateContainer handles PUT /containers/:name. The daemon cannot
// change image, environment, mounts, networks or ports in place, so the
// engine recreates the container from the merged spec.
func (cc *ContainerController) UpdateContainer(c *gin.Context) {
	name := c.Param("name")
	var req engine.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := cc.engine.UpdateContainer(c.Request.Context(), name, req)
	if err != nil {
		logger.WithComponent("container-controller").Errorf("update of container %s failed: %v", name, err)
		handleRuntimeError(c, err)
		return
	}

	cc.invalidateSystemInfo()
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "container " + name + " updated and recreated",
		"id":       result.ID,
		"warnings": result.Warnings,
	})
}

type attachVolumeRequest struct {
	VolumeName string `json:"volume_name" validate:"required"`
	MountPoint string `json:"mount_point" validate:"required"`
	Mode       string `json:"mode" validate:"omitempty,oneof=rw ro"`
}

// AttachVolume handles POST /containers/:name/volumes. Attaching a
// volume requires a recreation as well.
func (cc *ContainerController) AttachVolume(c *gin.Context) {
	name := c.Param("name")
	var req attachVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := cc.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := cc.engine.AttachVolume(c.Request.Context(), name, req.VolumeName, req.MountPoint, runtime.MountMode(req.Mode))
	if err != nil {
		logger.WithComponent("container-controller").Errorf("attach of volume %s to container %s failed: %v", req.VolumeName, name, err)
		handleRuntimeError(c, err)
		return
	}

	cc.invalidateSystemInfo()
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "volume " + req.VolumeName + " attached to container",
		"id":       result.ID,
		"warnings": result.Warnings,
	})
}

// ContainerStats handles GET /containers/:name/stats.
func (cc *ContainerController) ContainerStats(c *gin.Context) {
	name := c.Param("name")
	stats, err := cc.engine.ContainerUsage(c.Request.Context(), name)
	if err != nil {
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ConnectNetwork handles POST /containers/:name/networks/:network.
func (cc *ContainerController) ConnectNetwork(c *gin.Context) {
	name := c.Param("name")
	networkName := c.Param("network")
	if err := cc.rt.ConnectNetwork(c.Request.Context(), name, networkName); err != nil {
		handleRuntimeError(c, err)
		return
	}
	cc.invalidateSystemInfo()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "container connected to network " + networkName})
}

// DisconnectNetwork handles DELETE /containers/:name/networks/:network.
func (cc *ContainerController) DisconnectNetwork(c *gin.Context) {
	name := c.Param("name")
	networkName := c.Param("network")
	if err := cc.rt.DisconnectNetwork(c.Request.Context(), name, networkName); err != nil {
		handleRuntimeError(c, err)
		return
	}
	cc.invalidateSystemInfo()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "container disconnected from network " + networkName})
}
