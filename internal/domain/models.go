package domain

import (
	"time"
)

// Place is a province, county or city
type Place struct {
	ID       int64
	Level    GeoLevel
	ParentID int64 // zero for provinces
	Name     string
}

// PlaceFilter selects a page of places at one level
type PlaceFilter struct {
	Level    GeoLevel
	ParentID int64
	Query    string
	Page     int
	Limit    int
}

// CatalogItem is a row of a reference table (mode, package type, incoterm)
type CatalogItem struct {
	ID   int64
	Code string
	Name string
}

// Incoterm is a delivery term together with the shipment modes it applies to
type Incoterm struct {
	CatalogItem
	Description string
	Modes       []string
}

// Location is one end of a shipment, resolved down to the city
type Location struct {
	ProvinceID int64
	CountyID   int64
	CityID     int64
}

// ShipmentDraft is a validated, type-correct shipment submission
type ShipmentDraft struct {
	ShipmentModeID int64
	PackageTypeID  int64
	IncotermCode   *string
	IsHazardous    bool
	IsRefrigerated bool
	CommodityName  string
	HSCode         *string
	Units          int
	LengthCM       *float64
	WidthCM        *float64
	HeightCM       *float64
	WeightKG       float64
	VolumeM3       float64
	ReadyDate      *time.Time
	ContactName    string
	ContactPhone   *string
	ContactEmail   *string
	NoteText       *string
	Origin         Location
	Destination    Location
}

// ShipmentRequest is a persisted shipment draft
type ShipmentRequest struct {
	ID        int64
	Draft     ShipmentDraft
	Status    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	SLADueAt  *time.Time
}

// RequestEvent is published after a shipment request is stored
type RequestEvent struct {
	Type              string        `json:"type"`
	ShipmentRequestID int64         `json:"shipment_request_id"`
	Status            RequestStatus `json:"status"`
	SLADueAt          *time.Time    `json:"sla_due_at,omitempty"`
	OccurredAt        time.Time     `json:"occurred_at"`
}

const (
	EventRequestCreated = "shipment_request.created"
	EventRequestUpdated = "shipment_request.updated"
)
