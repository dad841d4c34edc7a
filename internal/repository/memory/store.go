// Package memory keeps every repository in process memory. It backs local
// runs without a database and the service and handler tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/repository"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

type Store struct {
	mu        sync.RWMutex
	requests  map[int64]domain.ShipmentRequest
	nextID    int64
	places    map[domain.GeoLevel]map[int64]domain.Place
	catalog   map[domain.CatalogKind][]domain.CatalogItem
	incoterms []domain.Incoterm
}

// NewStore returns a store seeded with the default catalog and no geography
func NewStore() *Store {
	s := &Store{
		requests: make(map[int64]domain.ShipmentRequest),
		places: map[domain.GeoLevel]map[int64]domain.Place{
			domain.GeoProvince: {},
			domain.GeoCounty:   {},
			domain.GeoCity:     {},
		},
		catalog: map[domain.CatalogKind][]domain.CatalogItem{
			domain.CatalogShipmentModes: append([]domain.CatalogItem(nil), domain.DefaultShipmentModes...),
			domain.CatalogPackageTypes:  append([]domain.CatalogItem(nil), domain.DefaultPackageTypes...),
		},
	}
	for _, inc := range domain.DefaultIncoterms {
		s.addIncoterm(inc)
	}
	return s
}

// AddPlace inserts or replaces a place
func (s *Store) AddPlace(p domain.Place) {
	s.mu.Lock()
	s.places[p.Level][p.ID] = p
	s.mu.Unlock()
}

// AddCatalogItem inserts or replaces a mode or package type row
func (s *Store) AddCatalogItem(kind domain.CatalogKind, item domain.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.catalog[kind]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return
		}
	}
	s.catalog[kind] = append(items, item)
}

func (s *Store) addIncoterm(inc domain.Incoterm) {
	s.incoterms = append(s.incoterms, inc)
	s.catalog[domain.CatalogIncoterms] = append(s.catalog[domain.CatalogIncoterms], inc.CatalogItem)
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		ShipmentRequest: &shipmentRequestRepository{s},
		Geo:             &geoRepository{s},
		Catalog:         &catalogRepository{s},
		Health:          &healthChecker{},
	}
}

type shipmentRequestRepository struct{ s *Store }

func (r *shipmentRequestRepository) Create(ctx context.Context, req *domain.ShipmentRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextID++
	req.ID = r.s.nextID
	r.s.requests[req.ID] = *req
	return nil
}

func (r *shipmentRequestRepository) Update(ctx context.Context, req *domain.ShipmentRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[req.ID]; !ok {
		return &errors.ErrNotFound{Resource: "shipment request", ID: strconv.FormatInt(req.ID, 10)}
	}
	r.s.requests[req.ID] = *req
	return nil
}

func (r *shipmentRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ShipmentRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "shipment request", ID: strconv.FormatInt(id, 10)}
	}
	return &req, nil
}

type geoRepository struct{ s *Store }

func (r *geoRepository) GetPlace(ctx context.Context, level domain.GeoLevel, id int64) (*domain.Place, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.places[level][id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: string(level), ID: strconv.FormatInt(id, 10)}
	}
	return &p, nil
}

func (r *geoRepository) ListPlaces(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	matched := make([]domain.Place, 0)
	for _, p := range r.s.places[filter.Level] {
		if filter.ParentID != 0 && p.ParentID != filter.ParentID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 || offset >= len(matched) {
		return []domain.Place{}, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *geoRepository) CountPlaces(ctx context.Context, level domain.GeoLevel) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.places[level]), nil
}

type catalogRepository struct{ s *Store }

func (r *catalogRepository) GetByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.catalog[kind] {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: string(kind), ID: strconv.FormatInt(id, 10)}
}

func (r *catalogRepository) GetByCode(ctx context.Context, kind domain.CatalogKind, code string) (*domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.catalog[kind] {
		if strings.EqualFold(item.Code, code) {
			found := item
			return &found, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: string(kind), ID: code}
}

func (r *catalogRepository) Search(ctx context.Context, kind domain.CatalogKind, query string, limit int) ([]domain.CatalogItem, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query = strings.ToLower(query)
	matched := make([]domain.CatalogItem, 0)
	for _, item := range r.s.catalog[kind] {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Code), query) ||
			strings.Contains(strings.ToLower(item.Name), query) {
			matched = append(matched, item)
		}
	}
	sortCatalog(matched)

	total := len(matched)
	if limit < total {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *catalogRepository) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := append([]domain.CatalogItem(nil), r.s.catalog[kind]...)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *catalogRepository) ListIncoterms(ctx context.Context, mode string) ([]domain.Incoterm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]domain.Incoterm, 0, len(r.s.incoterms))
	for _, inc := range r.s.incoterms {
		if mode != "" && !containsFold(inc.Modes, mode) {
			continue
		}
		result = append(result, inc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// Ping always fails: there is no database behind the memory store
type healthChecker struct{}

func (h *healthChecker) Ping(ctx context.Context) error {
	return &errors.ErrNotConfigured{Component: "database"}
}

func sortCatalog(items []domain.CatalogItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Code < items[j].Code
	})
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
