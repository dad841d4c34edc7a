package repository

import (
	"context"

	"github.com/jafarshop/shipment-intake/internal/domain"
)

// ShipmentRequestRepository stores shipment requests
type ShipmentRequestRepository interface {
	Create(ctx context.Context, req *domain.ShipmentRequest) error
	Update(ctx context.Context, req *domain.ShipmentRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ShipmentRequest, error)
}

// GeoRepository reads the province -> county -> city hierarchy
type GeoRepository interface {
	GetPlace(ctx context.Context, level domain.GeoLevel, id int64) (*domain.Place, error)
	ListPlaces(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error)
	CountPlaces(ctx context.Context, level domain.GeoLevel) (int, error)
}

// CatalogRepository reads the reference tables
type CatalogRepository interface {
	GetByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogItem, error)
	GetByCode(ctx context.Context, kind domain.CatalogKind, code string) (*domain.CatalogItem, error)
	Search(ctx context.Context, kind domain.CatalogKind, query string, limit int) ([]domain.CatalogItem, int, error)
	List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error)
	ListIncoterms(ctx context.Context, mode string) ([]domain.Incoterm, error)
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Repositories groups every storage collaborator
type Repositories struct {
	ShipmentRequest ShipmentRequestRepository
	Geo             GeoRepository
	Catalog         CatalogRepository
	Health          HealthChecker
}
