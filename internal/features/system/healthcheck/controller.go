package system_healthcheck

import (
	"context"
	"net/http"

	"teamsync/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context) error
}

type HealthcheckController struct {
	// nil resolves to the downdetect service on first use
	checker AvailabilityChecker
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
	router.GET("/system/ready", c.CheckReadiness)
}

// CheckHealth
// @Summary Liveness probe
// @Description Reports that the process is serving requests
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CheckReadiness
// @Summary Readiness probe
// @Description Checks database, cache and, when configured, the event bus
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /system/ready [get]
func (c *HealthcheckController) CheckReadiness(ctx *gin.Context) {
	checker := c.checker
	if checker == nil {
		checker = getAvailabilityChecker()
	}

	if err := checker.IsAvailable(ctx.Request.Context()); err != nil {
		logger.GetLogger().Warn("Readiness check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
