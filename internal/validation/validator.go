// Package validation turns a raw shipment draft into either a map of
// per-field errors or a normalized draft ready to be stored.
package validation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jafarshop/shipment-intake/internal/domain"
)

// FieldErrors maps a field name to its message
type FieldErrors map[string]string

// Lookup resolves catalog and geography references for the validator
type Lookup interface {
	CatalogByID(ctx context.Context, kind domain.CatalogKind, id int64) (domain.CatalogItem, bool, error)
	CatalogByCode(ctx context.Context, kind domain.CatalogKind, code string) (domain.CatalogItem, bool, error)
	Place(ctx context.Context, level domain.GeoLevel, id int64) (domain.Place, bool, error)
}

// Validator validates raw drafts against business rules
type Validator struct {
	lookup Lookup
	now    func() time.Time
}

// Option configures a Validator
type Option func(*Validator)

// WithClock sets the clock used for the ready date lower bound
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a new validator
func New(lookup Lookup, opts ...Option) *Validator {
	v := &Validator{
		lookup: lookup,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// geoSlot is one of the six location selections of a draft
type geoSlot struct {
	field  string
	level  domain.GeoLevel
	role   string
	parent string // field of the enclosing slot
}

var geoSlots = []geoSlot{
	{FieldOriginProvince, domain.GeoProvince, "استان مبدأ", ""},
	{FieldOriginCounty, domain.GeoCounty, "شهرستان مبدأ", FieldOriginProvince},
	{FieldOriginCity, domain.GeoCity, "شهر مبدأ", FieldOriginCounty},
	{FieldDestProvince, domain.GeoProvince, "استان مقصد", ""},
	{FieldDestCounty, domain.GeoCounty, "شهرستان مقصد", FieldDestProvince},
	{FieldDestCity, domain.GeoCity, "شهر مقصد", FieldDestCounty},
}

func (r RawDraft) geoValue(field string) Value {
	switch field {
	case FieldOriginProvince:
		return r.OriginProvinceID
	case FieldOriginCounty:
		return r.OriginCountyID
	case FieldOriginCity:
		return r.OriginCityID
	case FieldDestProvince:
		return r.DestProvinceID
	case FieldDestCounty:
		return r.DestCountyID
	case FieldDestCity:
		return r.DestCityID
	default:
		return Value{}
	}
}

// Validate checks every field of raw and reports all failures together.
// The returned error is set only when a lookup fails.
func (v *Validator) Validate(ctx context.Context, raw RawDraft) (*domain.ShipmentDraft, FieldErrors, error) {
	raw = raw.canonical()
	var draft domain.ShipmentDraft
	var found []*FieldError
	var fe *FieldError
	var err error

	draft.ShipmentModeID, fe, err = v.catalogRef(ctx, domain.CatalogShipmentModes, FieldShipmentMode, raw.ShipmentMode, modeMessages)
	if err != nil {
		return nil, nil, err
	}
	found = append(found, fe)

	draft.PackageTypeID, fe, err = v.catalogRef(ctx, domain.CatalogPackageTypes, FieldPackageType, raw.PackageType, packageMessages)
	if err != nil {
		return nil, nil, err
	}
	found = append(found, fe)

	draft.IncotermCode, fe, err = v.incoterm(ctx, raw.IncotermCode)
	if err != nil {
		return nil, nil, err
	}
	found = append(found, fe)

	places, geoErrs, err := v.places(ctx, raw)
	if err != nil {
		return nil, nil, err
	}
	found = append(found, geoErrs...)
	draft.Origin = domain.Location{
		ProvinceID: places[FieldOriginProvince].ID,
		CountyID:   places[FieldOriginCounty].ID,
		CityID:     places[FieldOriginCity].ID,
	}
	draft.Destination = domain.Location{
		ProvinceID: places[FieldDestProvince].ID,
		CountyID:   places[FieldDestCounty].ID,
		CityID:     places[FieldDestCity].ID,
	}

	draft.IsHazardous, fe = checkFlag(FieldIsHazardous, raw.IsHazardous)
	found = append(found, fe)
	draft.IsRefrigerated, fe = checkFlag(FieldIsRefrigerated, raw.IsRefrigerated)
	found = append(found, fe)

	draft.CommodityName, fe = checkRequiredText(FieldCommodityName, raw.CommodityName, MaxCommodityNameLen, MsgCommodityRequired, MsgCommodityTooLong)
	found = append(found, fe)
	draft.HSCode, fe = checkHSCode(raw.HSCode)
	found = append(found, fe)

	draft.Units, fe = checkUnits(raw.Units)
	found = append(found, fe)

	draft.LengthCM, fe = checkMeasure(FieldLengthCM, raw.LengthCM)
	found = append(found, fe)
	draft.WidthCM, fe = checkMeasure(FieldWidthCM, raw.WidthCM)
	found = append(found, fe)
	draft.HeightCM, fe = checkMeasure(FieldHeightCM, raw.HeightCM)
	found = append(found, fe)
	found = append(found, checkDimensionTriple(raw.LengthCM, raw.WidthCM, raw.HeightCM)...)

	draft.WeightKG, fe = checkWeight(raw.WeightKG)
	found = append(found, fe)

	var volume *float64
	volume, fe = checkMeasure(FieldVolumeM3, raw.VolumeM3)
	found = append(found, fe)

	draft.ReadyDate, fe = checkReadyDate(raw.ReadyDate, v.now())
	found = append(found, fe)

	draft.ContactName, fe = checkRequiredText(FieldContactName, raw.ContactName, MaxContactNameLen, MsgContactRequired, MsgContactTooLong)
	found = append(found, fe)
	draft.ContactPhone, fe = checkPattern(FieldContactPhone, raw.ContactPhone, mobilePattern, MsgPhoneInvalid, MsgPhoneFormat)
	found = append(found, fe)
	draft.ContactEmail, fe = checkPattern(FieldContactEmail, raw.ContactEmail, emailPattern, MsgEmailInvalid, MsgEmailFormat)
	found = append(found, fe)
	draft.NoteText, fe = checkNote(raw.NoteText)
	found = append(found, fe)

	if errs := merge(found); len(errs) > 0 {
		return nil, errs, nil
	}

	draft.VolumeM3 = DeriveVolume(volume, draft.LengthCM, draft.WidthCM, draft.HeightCM, draft.Units)
	return &draft, nil, nil
}

// merge folds the individual results into one map; the first message for a
// field wins
func merge(found []*FieldError) FieldErrors {
	errs := FieldErrors{}
	for _, fe := range found {
		if fe == nil {
			continue
		}
		if _, exists := errs[fe.Field]; !exists {
			errs[fe.Field] = fe.Message
		}
	}
	return errs
}

// DeriveVolume returns the explicit volume when given, otherwise the volume in
// cubic meters of units boxes measured in centimeters. Zero when it cannot be
// computed.
func DeriveVolume(explicit, length, width, height *float64, units int) float64 {
	if explicit != nil {
		return *explicit
	}
	if length == nil || width == nil || height == nil || units <= 0 {
		return 0
	}
	if *length <= 0 || *width <= 0 || *height <= 0 {
		return 0
	}
	cubicCM := *length * *width * *height * float64(units)
	return roundTo(cubicCM/1_000_000, 3)
}

func roundTo(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

func (v *Validator) catalogRef(ctx context.Context, kind domain.CatalogKind, field string, raw Value, msgs catalogMessages) (int64, *FieldError, error) {
	if raw.blank() {
		return 0, fieldErr(field, msgs.required), nil
	}
	id, ok := positiveID(raw)
	if !ok {
		return 0, fieldErr(field, msgs.invalid), nil
	}
	_, exists, err := v.lookup.CatalogByID(ctx, kind, id)
	if err != nil {
		return 0, nil, fmt.Errorf("lookup %s %d: %w", kind, id, err)
	}
	if !exists {
		return 0, fieldErr(field, msgs.notFound), nil
	}
	return id, nil, nil
}

func (v *Validator) incoterm(ctx context.Context, raw Value) (*string, *FieldError, error) {
	if !raw.supplied() {
		return nil, nil, nil
	}
	if raw.kind != KindString || isSpaceOnly(raw.text) {
		return nil, fieldErr(FieldIncotermCode, MsgIncotermInvalid), nil
	}
	code := strings.TrimSpace(raw.text)
	item, exists, err := v.lookup.CatalogByCode(ctx, domain.CatalogIncoterms, code)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup incoterm %q: %w", code, err)
	}
	if !exists {
		return nil, fieldErr(FieldIncotermCode, MsgIncotermUnknown), nil
	}
	canonical := item.Code
	return &canonical, nil, nil
}

// places resolves the six geography slots. A county or city that exists but
// sits under a different parent than the one selected is rejected.
func (v *Validator) places(ctx context.Context, raw RawDraft) (map[string]domain.Place, []*FieldError, error) {
	resolved := make(map[string]domain.Place, len(geoSlots))
	var errs []*FieldError

	for _, slot := range geoSlots {
		value := raw.geoValue(slot.field)
		if value.blank() {
			errs = append(errs, fieldErr(slot.field, msgGeoRequired(slot.role)))
			continue
		}
		id, ok := positiveID(value)
		if !ok {
			errs = append(errs, fieldErr(slot.field, msgGeoInvalid(slot.role)))
			continue
		}
		place, exists, err := v.lookup.Place(ctx, slot.level, id)
		if err != nil {
			return nil, nil, fmt.Errorf("lookup %s %d: %w", slot.level, id, err)
		}
		if !exists {
			errs = append(errs, fieldErr(slot.field, msgGeoNotFound(slot.role)))
			continue
		}
		resolved[slot.field] = place
	}

	for _, slot := range geoSlots {
		if slot.parent == "" {
			continue
		}
		child, ok := resolved[slot.field]
		if !ok {
			continue
		}
		parent, ok := resolved[slot.parent]
		if !ok {
			continue
		}
		if child.ParentID != parent.ID {
			errs = append(errs, fieldErr(slot.field, msgGeoParent(slot.role)))
		}
	}

	return resolved, errs, nil
}
