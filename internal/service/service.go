package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/events"
	"github.com/jafarshop/shipment-intake/internal/repository"
	"github.com/jafarshop/shipment-intake/internal/validation"
)

// IntakeService accepts, validates and stores shipment drafts
type IntakeService interface {
	SubmitDraft(ctx context.Context, raw validation.RawDraft, existingID *int64) (*SubmitResult, error)
	ValidateDraft(ctx context.Context, raw validation.RawDraft) (*domain.ShipmentDraft, error)
	GetRequest(ctx context.Context, id int64) (*RequestView, error)
}

// CatalogService serves the reference tables
type CatalogService interface {
	ListCatalog(ctx context.Context, kind domain.CatalogKind, query string, limit int) (*CatalogPage, error)
	Modes(ctx context.Context) ([]CatalogItemView, error)
	PackageTypes(ctx context.Context) ([]CatalogItemView, error)
	Incoterms(ctx context.Context, mode string) ([]IncotermView, error)
}

// GeoService serves the province -> county -> city hierarchy
type GeoService interface {
	ListGeography(ctx context.Context, q GeoQuery) ([]PlaceView, error)
}

// HealthService reports whether storage is reachable
type HealthService interface {
	Check(ctx context.Context) error
}

// Services groups every service used by the HTTP layer
type Services struct {
	Intake  IntakeService
	Catalog CatalogService
	Geo     GeoService
	Health  HealthService
}

// IntakeConfig tunes the intake service
type IntakeConfig struct {
	SLAHours int
	// Location decides which calendar day counts as today for ready dates
	Location *time.Location
	Now      func() time.Time
}

// NewServices wires every service to repos
func NewServices(repos *repository.Repositories, publisher events.Publisher, cfg IntakeConfig, logger *zap.Logger) *Services {
	return &Services{
		Intake:  NewIntakeService(repos, publisher, cfg, logger),
		Catalog: NewCatalogService(repos, logger),
		Geo:     NewGeoService(repos, logger),
		Health:  NewHealthService(repos, logger),
	}
}
