package service

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/repository"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

const (
	DefaultGeoLimit = 50
	MaxGeoLimit     = 1000
)

type geoService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewGeoService creates a new geography service
func NewGeoService(repos *repository.Repositories, logger *zap.Logger) *geoService {
	return &geoService{
		repos:  repos,
		logger: logger,
	}
}

// ListGeography returns one page of places, ordered by id. Counties and
// cities are only listed within their parent.
func (s *geoService) ListGeography(ctx context.Context, q GeoQuery) ([]PlaceView, error) {
	if q.Level.Table() == "" {
		return nil, &errors.ErrNotFound{Resource: "geography level", ID: string(q.Level)}
	}
	if col := q.Level.ParentColumn(); col != "" && q.ParentID <= 0 {
		return nil, &errors.ErrBadRequest{Message: col + " الزامی است"}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := clamp(q.Limit, 1, MaxGeoLimit)
	// no table holds enough rows to reach a page whose offset overflows
	if page-1 > math.MaxInt/limit {
		return []PlaceView{}, nil
	}

	places, err := s.repos.Geo.ListPlaces(ctx, domain.PlaceFilter{
		Level:    q.Level,
		ParentID: q.ParentID,
		Query:    strings.TrimSpace(q.Query),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	views := make([]PlaceView, len(places))
	for i, p := range places {
		views[i] = PlaceView{ID: p.ID, Name: p.Name}
		parent := p.ParentID
		switch p.Level {
		case domain.GeoCounty:
			views[i].ProvinceID = &parent
		case domain.GeoCity:
			views[i].CountyID = &parent
		}
	}
	return views, nil
}
