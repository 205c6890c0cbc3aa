package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
