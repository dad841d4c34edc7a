package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/events"
	"github.com/jafarshop/shipment-intake/internal/repository"
	"github.com/jafarshop/shipment-intake/internal/validation"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

const readyDateLayout = "2006-01-02"

type intakeService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	publisher events.Publisher
	slaHours  int
	now       func() time.Time
	logger    *zap.Logger
}

// NewIntakeService creates a new intake service
func NewIntakeService(repos *repository.Repositories, publisher events.Publisher, cfg IntakeConfig, logger *zap.Logger) *intakeService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &intakeService{
		repos: repos,
		validator: validation.New(&repoLookup{repos: repos}, validation.WithClock(func() time.Time {
			return now().In(loc)
		})),
		publisher: publisher,
		slaHours:  cfg.SLAHours,
		now:       now,
		logger:    logger,
	}
}

// SubmitDraft validates raw and stores it as a new request, or over the
// request existingID points at
func (s *intakeService) SubmitDraft(ctx context.Context, raw validation.RawDraft, existingID *int64) (*SubmitResult, error) {
	var existing *domain.ShipmentRequest
	if existingID != nil {
		req, err := s.repos.ShipmentRequest.GetByID(ctx, *existingID)
		if err != nil {
			return nil, err
		}
		existing = req
	}

	draft, err := s.validate(ctx, raw)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if existing == nil {
		due := now.Add(s.slaDuration())
		req := &domain.ShipmentRequest{
			Draft:     *draft,
			Status:    domain.RequestStatusNew,
			CreatedAt: now,
			UpdatedAt: now,
			SLADueAt:  &due,
		}
		if err := s.repos.ShipmentRequest.Create(ctx, req); err != nil {
			return nil, fmt.Errorf("failed to create shipment request: %w", err)
		}

		s.logger.Info("Shipment request created", zap.Int64("shipment_request_id", req.ID))
		s.publish(ctx, domain.EventRequestCreated, req)
		return &SubmitResult{Request: req, Created: true, SLAHours: s.slaHours}, nil
	}

	// Identity, status and creation time survive a resubmission
	existing.Draft = *draft
	existing.UpdatedAt = now
	if existing.Status == "" {
		existing.Status = domain.RequestStatusNew
	}
	if existing.SLADueAt == nil {
		due := now.Add(s.slaDuration())
		existing.SLADueAt = &due
	}
	if err := s.repos.ShipmentRequest.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update shipment request: %w", err)
	}

	s.logger.Info("Shipment request updated", zap.Int64("shipment_request_id", existing.ID))
	s.publish(ctx, domain.EventRequestUpdated, existing)
	return &SubmitResult{Request: existing, Created: false, SLAHours: s.slaHours}, nil
}

// ValidateDraft runs validation without storing anything
func (s *intakeService) ValidateDraft(ctx context.Context, raw validation.RawDraft) (*domain.ShipmentDraft, error) {
	return s.validate(ctx, raw)
}

func (s *intakeService) validate(ctx context.Context, raw validation.RawDraft) (*domain.ShipmentDraft, error) {
	draft, fields, err := s.validator.Validate(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to validate draft: %w", err)
	}
	if len(fields) > 0 {
		return nil, &errors.ErrValidation{Fields: fields}
	}
	return draft, nil
}

func (s *intakeService) slaDuration() time.Duration {
	return time.Duration(s.slaHours) * time.Hour
}

// publish emits a lifecycle event. The request is already stored, so a
// failure here is logged and dropped.
func (s *intakeService) publish(ctx context.Context, eventType string, req *domain.ShipmentRequest) {
	event := domain.RequestEvent{
		Type:              eventType,
		ShipmentRequestID: req.ID,
		Status:            req.Status,
		SLADueAt:          req.SLADueAt,
		OccurredAt:        s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, strconv.FormatInt(req.ID, 10), event); err != nil {
		s.logger.Warn("Failed to publish shipment request event",
			zap.String("event_type", eventType),
			zap.Int64("shipment_request_id", req.ID),
			zap.Error(err),
		)
	}
}

// GetRequest loads a request and resolves its references for display
func (s *intakeService) GetRequest(ctx context.Context, id int64) (*RequestView, error) {
	req, err := s.repos.ShipmentRequest.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := req.Draft

	view := &RequestView{
		ID:        req.ID,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
		SLADueAt:  req.SLADueAt,
		Contact: ContactView{
			Name:  d.ContactName,
			Phone: d.ContactPhone,
			Email: d.ContactEmail,
		},
		NoteText: d.NoteText,
		Goods: GoodsView{
			IsHazardous:    d.IsHazardous,
			IsRefrigerated: d.IsRefrigerated,
			CommodityName:  d.CommodityName,
			HSCode:         d.HSCode,
			Units:          d.Units,
			LengthCM:       d.LengthCM,
			WidthCM:        d.WidthCM,
			HeightCM:       d.HeightCM,
			WeightKG:       d.WeightKG,
			VolumeM3:       d.VolumeM3,
		},
	}
	if !req.UpdatedAt.IsZero() {
		updated := req.UpdatedAt
		view.UpdatedAt = &updated
	}
	if d.ReadyDate != nil {
		date := d.ReadyDate.Format(readyDateLayout)
		view.Goods.ReadyDate = &date
	}

	if view.Origin, err = s.locationView(ctx, d.Origin); err != nil {
		return nil, err
	}
	if view.Destination, err = s.locationView(ctx, d.Destination); err != nil {
		return nil, err
	}
	if view.Goods.ShipmentMode, err = s.catalogRef(ctx, domain.CatalogShipmentModes, d.ShipmentModeID); err != nil {
		return nil, err
	}
	if view.Goods.PackageType, err = s.catalogRef(ctx, domain.CatalogPackageTypes, d.PackageTypeID); err != nil {
		return nil, err
	}
	if d.IncotermCode != nil {
		item, err := s.repos.Catalog.GetByCode(ctx, domain.CatalogIncoterms, *d.IncotermCode)
		switch {
		case isNotFound(err):
			view.Goods.Incoterm = &CatalogRef{Code: *d.IncotermCode}
		case err != nil:
			return nil, fmt.Errorf("failed to resolve incoterm: %w", err)
		default:
			view.Goods.Incoterm = &CatalogRef{ID: item.ID, Code: item.Code, Name: item.Name}
		}
	}

	return view, nil
}

func (s *intakeService) locationView(ctx context.Context, loc domain.Location) (LocationView, error) {
	var (
		view LocationView
		err  error
	)
	if view.Province, err = s.placeRef(ctx, domain.GeoProvince, loc.ProvinceID); err != nil {
		return view, err
	}
	if view.County, err = s.placeRef(ctx, domain.GeoCounty, loc.CountyID); err != nil {
		return view, err
	}
	if view.City, err = s.placeRef(ctx, domain.GeoCity, loc.CityID); err != nil {
		return view, err
	}
	return view, nil
}

func (s *intakeService) placeRef(ctx context.Context, level domain.GeoLevel, id int64) (*PlaceRef, error) {
	if id == 0 {
		return nil, nil
	}
	place, err := s.repos.Geo.GetPlace(ctx, level, id)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", level, err)
	}
	return &PlaceRef{ID: place.ID, Name: place.Name}, nil
}

func (s *intakeService) catalogRef(ctx context.Context, kind domain.CatalogKind, id int64) (*CatalogRef, error) {
	if id == 0 {
		return nil, nil
	}
	item, err := s.repos.Catalog.GetByID(ctx, kind, id)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", kind, err)
	}
	return &CatalogRef{ID: item.ID, Code: item.Code, Name: item.Name}, nil
}
