package service

import (
	"time"

	"github.com/jafarshop/shipment-intake/internal/domain"
)

// SubmitResult is the outcome of a successful submission
type SubmitResult struct {
	Request  *domain.ShipmentRequest
	Created  bool
	SLAHours int
}

// SubmitResponse is the body returned for a stored draft
type SubmitResponse struct {
	ShipmentRequestID int64                `json:"shipment_request_id"`
	Status            domain.RequestStatus `json:"status"`
	SLAHours          int                  `json:"sla_hours"`
	SLADueAt          *time.Time           `json:"sla_due_at"`
}

// Response renders the result as the submit response body
func (r *SubmitResult) Response() SubmitResponse {
	return SubmitResponse{
		ShipmentRequestID: r.Request.ID,
		Status:            r.Request.Status,
		SLAHours:          r.SLAHours,
		SLADueAt:          r.Request.SLADueAt,
	}
}

// ValidateResponse is the body returned for a draft that passed a dry run
type ValidateResponse struct {
	OK        bool    `json:"ok"`
	VolumeCBM float64 `json:"volume_cbm"`
}

type PlaceRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CatalogRef struct {
	ID   int64  `json:"id,omitempty"`
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// LocationView resolves the three ids of a location; rows that no longer
// exist render as null
type LocationView struct {
	Province *PlaceRef `json:"province"`
	County   *PlaceRef `json:"county"`
	City     *PlaceRef `json:"city"`
}

type GoodsView struct {
	ShipmentMode   *CatalogRef `json:"mode_shipment_mode"`
	PackageType    *CatalogRef `json:"package_type"`
	Incoterm       *CatalogRef `json:"incoterm"`
	IsHazardous    bool        `json:"is_hazardous"`
	IsRefrigerated bool        `json:"is_refrigerated"`
	CommodityName  string      `json:"commodity_name"`
	HSCode         *string     `json:"hs_code"`
	Units          int         `json:"units"`
	LengthCM       *float64    `json:"length_cm"`
	WidthCM        *float64    `json:"width_cm"`
	HeightCM       *float64    `json:"height_cm"`
	WeightKG       float64     `json:"weight_kg"`
	VolumeM3       float64     `json:"volume_m3"`
	ReadyDate      *string     `json:"ready_date"`
}

type ContactView struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// RequestView is the full read model of a stored shipment request
type RequestView struct {
	ID          int64                `json:"id"`
	Status      domain.RequestStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at"`
	SLADueAt    *time.Time           `json:"sla_due_at"`
	Origin      LocationView         `json:"origin"`
	Destination LocationView         `json:"destination"`
	Goods       GoodsView            `json:"goods"`
	Contact     ContactView          `json:"contact"`
	NoteText    *string              `json:"note_text"`
}

type CatalogItemView struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CatalogPage is one page of catalog search results; Total counts every match
type CatalogPage struct {
	Items []CatalogItemView `json:"items"`
	Total int               `json:"total"`
}

type IncotermView struct {
	ID          int64    `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Modes       []string `json:"modes"`
}

// GeoQuery selects a page of places at one level
type GeoQuery struct {
	Level    domain.GeoLevel
	ParentID int64
	Query    string
	Page     int
	Limit    int
}

type PlaceView struct {
	ID         int64  `json:"id"`
	ProvinceID *int64 `json:"province_id,omitempty"`
	CountyID   *int64 `json:"county_id,omitempty"`
	Name       string `json:"name"`
}

func catalogItemViews(items []domain.CatalogItem) []CatalogItemView {
	views := make([]CatalogItemView, len(items))
	for i, item := range items {
		views[i] = CatalogItemView{ID: item.ID, Code: item.Code, Name: item.Name}
	}
	return views
}
