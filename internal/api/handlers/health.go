package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/service"
)

// HandleHealth handles GET /health
func HandleHealth(health service.HealthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := health.Check(c.Request.Context()); err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
