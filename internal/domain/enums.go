package domain

// RequestStatus represents the lifecycle status of a shipment request
type RequestStatus string

const (
	RequestStatusNew RequestStatus = "NEW"
)

// CatalogKind names one of the reference tables exposed under /catalog
type CatalogKind string

const (
	CatalogShipmentModes CatalogKind = "shipment-modes"
	CatalogIncoterms     CatalogKind = "incoterms"
	CatalogPackageTypes  CatalogKind = "package-types"
)

// IsValid checks if the catalog kind is known
func (k CatalogKind) IsValid() bool {
	switch k {
	case CatalogShipmentModes, CatalogIncoterms, CatalogPackageTypes:
		return true
	default:
		return false
	}
}

// Table returns the storage table backing the catalog kind
func (k CatalogKind) Table() string {
	switch k {
	case CatalogShipmentModes:
		return "shipment_mode"
	case CatalogIncoterms:
		return "incoterm"
	case CatalogPackageTypes:
		return "package_type"
	default:
		return ""
	}
}

// GeoLevel is a level of the province -> county -> city hierarchy
type GeoLevel string

const (
	GeoProvince GeoLevel = "province"
	GeoCounty   GeoLevel = "county"
	GeoCity     GeoLevel = "city"
)

// Parent returns the level a place of this level is scoped to.
// Provinces have no parent.
func (l GeoLevel) Parent() (GeoLevel, bool) {
	switch l {
	case GeoCounty:
		return GeoProvince, true
	case GeoCity:
		return GeoCounty, true
	default:
		return "", false
	}
}

// Table returns the storage table for the level
func (l GeoLevel) Table() string {
	switch l {
	case GeoProvince, GeoCounty, GeoCity:
		return string(l)
	default:
		return ""
	}
}

// ParentColumn returns the foreign key column pointing at the parent level
func (l GeoLevel) ParentColumn() string {
	switch l {
	case GeoCounty:
		return "province_id"
	case GeoCity:
		return "county_id"
	default:
		return ""
	}
}
