package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/repository"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

const (
	DefaultCatalogLimit = 20
	MaxCatalogLimit     = 100
)

type catalogService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repository.Repositories, logger *zap.Logger) *catalogService {
	return &catalogService{
		repos:  repos,
		logger: logger,
	}
}

// ListCatalog searches one catalog by code or name, case-insensitively
func (s *catalogService) ListCatalog(ctx context.Context, kind domain.CatalogKind, query string, limit int) (*CatalogPage, error) {
	if !kind.IsValid() {
		return nil, &errors.ErrNotFound{Resource: "catalog", ID: string(kind)}
	}

	items, total, err := s.repos.Catalog.Search(ctx, kind, strings.TrimSpace(query), clamp(limit, 1, MaxCatalogLimit))
	if err != nil {
		return nil, err
	}

	return &CatalogPage{Items: catalogItemViews(items), Total: total}, nil
}

func (s *catalogService) Modes(ctx context.Context) ([]CatalogItemView, error) {
	items, err := s.repos.Catalog.List(ctx, domain.CatalogShipmentModes)
	if err != nil {
		return nil, err
	}
	return catalogItemViews(items), nil
}

func (s *catalogService) PackageTypes(ctx context.Context) ([]CatalogItemView, error) {
	items, err := s.repos.Catalog.List(ctx, domain.CatalogPackageTypes)
	if err != nil {
		return nil, err
	}
	return catalogItemViews(items), nil
}

// Incoterms lists delivery terms, restricted to those allowed for mode when
// one is given
func (s *catalogService) Incoterms(ctx context.Context, mode string) ([]IncotermView, error) {
	incoterms, err := s.repos.Catalog.ListIncoterms(ctx, strings.TrimSpace(mode))
	if err != nil {
		return nil, err
	}

	views := make([]IncotermView, len(incoterms))
	for i, inc := range incoterms {
		modes := inc.Modes
		if modes == nil {
			modes = []string{}
		}
		views[i] = IncotermView{
			ID:          inc.ID,
			Code:        inc.Code,
			Name:        inc.Name,
			Description: inc.Description,
			Modes:       modes,
		}
	}
	return views, nil
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
