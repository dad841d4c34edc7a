package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/api/handlers"
	"github.com/jafarshop/shipment-intake/internal/api/middleware"
	"github.com/jafarshop/shipment-intake/internal/config"
	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services *service.Services, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(handlers.Recovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.CORS(cfg.CORSOrigin))

	router.NoRoute(handlers.HandleNoRoute)
	router.NoMethod(handlers.HandleNoMethod)

	// Health check
	router.GET("/health", handlers.HandleHealth(services.Health, logger))

	// Intake
	router.POST("/shipment-requests", handlers.HandleSubmitShipment(services.Intake, logger))
	router.POST("/shipment/validate-draft", handlers.HandleValidateDraft(services.Intake, logger))
	router.GET("/requests/:id", handlers.HandleGetRequest(services.Intake, logger))

	// Geography
	geo := router.Group("/geo")
	{
		geo.GET("/provinces", handlers.HandleListPlaces(services.Geo, domain.GeoProvince, logger))
		geo.GET("/counties", handlers.HandleListPlaces(services.Geo, domain.GeoCounty, logger))
		geo.GET("/cities", handlers.HandleListPlaces(services.Geo, domain.GeoCity, logger))
	}

	// Catalog
	router.GET("/catalog/:kind", handlers.HandleListCatalog(services.Catalog, logger))

	meta := router.Group("/meta")
	{
		meta.GET("/modes", handlers.HandleListModes(services.Catalog, logger))
		meta.GET("/package-types", handlers.HandleListPackageTypes(services.Catalog, logger))
		meta.GET("/incoterms", handlers.HandleListIncoterms(services.Catalog, logger))
		meta.GET("/ping", handlers.HandlePing)
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
