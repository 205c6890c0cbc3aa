package controller

import (
	"net/http"

	"github.com/bassista/dockhand/internal/cache"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// NetworkController handles network-related HTTP endpoints.
type NetworkController struct {
	rt       runtime.ContainerRuntime
	cache    cache.ResponseCache
	validate *validator.Validate
}

func NewNetworkController(rt runtime.ContainerRuntime, store cache.ResponseCache) *NetworkController {
	return &NetworkController{rt: rt, cache: store, validate: validator.New()}
}

// AllNetworks handles GET /networks.
func (nc *NetworkController) AllNetworks(c *gin.Context) {
	networks, err := nc.rt.Networks(c.Request.Context())
	if err != nil {
		handleRuntimeError(c, err)
		return
	}
	c.JSON(http.StatusOK, networks)
}

type createNetworkRequest struct {
	Name    string            `json:"name" validate:"required"`
	Driver  string            `json:"driver" validate:"omitempty,oneof=bridge overlay macvlan host none"`
	Options map[string]string `json:"options"`
}

// CreateNetwork handles POST /networks.
func (nc *NetworkController) CreateNetwork(c *gin.Context) {
	var req createNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := nc.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Driver == "" {
		req.Driver = "bridge"
	}

	id, err := nc.rt.CreateNetwork(c.Request.Context(), req.Name, req.Driver, req.Options)
	if err != nil {
		handleRuntimeError(c, err)
		return
	}
	nc.cache.Delete(SystemInfoCacheKey)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "id": id, "name": req.Name})
}

// RemoveNetwork handles DELETE /networks/:name.
func (nc *NetworkController) RemoveNetwork(c *gin.Context) {
	name := c.Param("name")
	if err := nc.rt.RemoveNetwork(c.Request.Context(), name); err != nil {
		handleRuntimeError(c, err)
		return
	}
	nc.cache.Delete(SystemInfoCacheKey)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "network " + name + " removed"})
}
