package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/service"
)

// HandleListCatalog handles GET /catalog/:kind
func HandleListCatalog(catalog service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := domain.CatalogKind(c.Param("kind"))
		limit := queryInt(c, "limit", service.DefaultCatalogLimit)

		page, err := catalog.ListCatalog(c.Request.Context(), kind, c.Query("q"), limit)
		if err != nil {
			handleError(c, logger, err, msgCatalogNotFound)
			return
		}

		c.JSON(http.StatusOK, page)
	}
}

// HandleListModes handles GET /meta/modes
func HandleListModes(catalog service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		modes, err := catalog.Modes(c.Request.Context())
		if err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}
		c.JSON(http.StatusOK, modes)
	}
}

// HandleListPackageTypes handles GET /meta/package-types
func HandleListPackageTypes(catalog service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := catalog.PackageTypes(c.Request.Context())
		if err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}
		c.JSON(http.StatusOK, types)
	}
}

// HandleListIncoterms handles GET /meta/incoterms
func HandleListIncoterms(catalog service.CatalogService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		incoterms, err := catalog.Incoterms(c.Request.Context(), c.Query("mode"))
		if err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}
		c.JSON(http.StatusOK, incoterms)
	}
}

// HandlePing handles GET /meta/ping
func HandlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pong": true})
}

// queryInt reads an integer query parameter, falling back to def when it is
// missing or malformed
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
