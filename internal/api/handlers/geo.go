package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/service"
)

// HandleListPlaces handles GET /geo/provinces, /geo/counties and /geo/cities
func HandleListPlaces(geo service.GeoService, level domain.GeoLevel, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := service.GeoQuery{
			Level: level,
			Query: c.Query("q"),
			Page:  queryInt(c, "page", 1),
			Limit: queryInt(c, "limit", service.DefaultGeoLimit),
		}
		if col := level.ParentColumn(); col != "" {
			// a malformed parent id is reported the same as a missing one
			q.ParentID, _ = strconv.ParseInt(c.Query(col), 10, 64)
		}

		places, err := geo.ListGeography(c.Request.Context(), q)
		if err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}

		c.JSON(http.StatusOK, places)
	}
}
