package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

// draftColumns lists the shipment_request columns written from a draft, in
// the order draftArgs returns them
var draftColumns = []string{
	"origin_province_id",
	"origin_county_id",
	"origin_city_id",
	"dest_province_id",
	"dest_county_id",
	"dest_city_id",
	"ready_date",
	"mode_shipment_mode",
	"incoterm_code",
	"is_hazardous",
	"is_refrigerated",
	"commodity_name",
	"hs_code",
	"package_type",
	"units",
	"length_cm",
	"width_cm",
	"height_cm",
	"weight_kg",
	"volume_m3",
	"contact_name",
	"contact_phone",
	"contact_email",
	"note_text",
}

var (
	insertRequestQuery = buildInsertRequestQuery()
	updateRequestQuery = buildUpdateRequestQuery()
	selectRequestQuery = `
		SELECT id, ` + strings.Join(draftColumns, ", ") + `,
			status_request_status, created_at, updated_at, sla_due_at
		FROM shipment_request
		WHERE id = $1
	`
)

func buildInsertRequestQuery() string {
	cols := append(append([]string(nil), draftColumns...), "status_request_status", "created_at", "updated_at", "sla_due_at")
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO shipment_request (%s) VALUES (%s) RETURNING id",
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
}

func buildUpdateRequestQuery() string {
	cols := append(append([]string(nil), draftColumns...), "status_request_status", "updated_at", "sla_due_at")
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}
	return fmt.Sprintf("UPDATE shipment_request SET %s WHERE id = $1", strings.Join(sets, ", "))
}

func draftArgs(d domain.ShipmentDraft) []interface{} {
	return []interface{}{
		d.Origin.ProvinceID,
		d.Origin.CountyID,
		d.Origin.CityID,
		d.Destination.ProvinceID,
		d.Destination.CountyID,
		d.Destination.CityID,
		d.ReadyDate,
		d.ShipmentModeID,
		d.IncotermCode,
		d.IsHazardous,
		d.IsRefrigerated,
		d.CommodityName,
		d.HSCode,
		d.PackageTypeID,
		d.Units,
		d.LengthCM,
		d.WidthCM,
		d.HeightCM,
		d.WeightKG,
		d.VolumeM3,
		d.ContactName,
		d.ContactPhone,
		d.ContactEmail,
		d.NoteText,
	}
}

type shipmentRequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShipmentRequestRepository creates a new shipment request repository
func NewShipmentRequestRepository(db *sql.DB, logger *zap.Logger) *shipmentRequestRepository {
	return &shipmentRequestRepository{
		db:     db,
		logger: logger,
	}
}

func (r *shipmentRequestRepository) Create(ctx context.Context, req *domain.ShipmentRequest) error {
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	if req.UpdatedAt.IsZero() {
		req.UpdatedAt = req.CreatedAt
	}

	args := append(draftArgs(req.Draft), string(req.Status), req.CreatedAt, req.UpdatedAt, req.SLADueAt)
	err := r.db.QueryRowContext(ctx, insertRequestQuery, args...).Scan(&req.ID)
	if err != nil {
		r.logger.Error("Failed to create shipment request", zap.Error(err))
		return err
	}

	return nil
}

// Update overwrites every mutable column in one statement; concurrent
// updates of the same row are last-write-wins
func (r *shipmentRequestRepository) Update(ctx context.Context, req *domain.ShipmentRequest) error {
	args := append([]interface{}{req.ID}, draftArgs(req.Draft)...)
	args = append(args, string(req.Status), req.UpdatedAt, req.SLADueAt)

	res, err := r.db.ExecContext(ctx, updateRequestQuery, args...)
	if err != nil {
		r.logger.Error("Failed to update shipment request", zap.Int64("shipment_request_id", req.ID), zap.Error(err))
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.ErrNotFound{Resource: "shipment request", ID: strconv.FormatInt(req.ID, 10)}
	}

	return nil
}

func (r *shipmentRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ShipmentRequest, error) {
	var (
		req            domain.ShipmentRequest
		status         string
		readyDate      sql.NullTime
		incotermCode   sql.NullString
		isHazardous    sql.NullBool
		isRefrigerated sql.NullBool
		commodityName  sql.NullString
		hsCode         sql.NullString
		modeID         sql.NullInt64
		packageID      sql.NullInt64
		units          sql.NullInt64
		length         sql.NullFloat64
		width          sql.NullFloat64
		height         sql.NullFloat64
		weight         sql.NullFloat64
		volume         sql.NullFloat64
		contactName    sql.NullString
		contactPhone   sql.NullString
		contactEmail   sql.NullString
		noteText       sql.NullString
		updatedAt      sql.NullTime
		slaDueAt       sql.NullTime
	)

	d := &req.Draft
	err := r.db.QueryRowContext(ctx, selectRequestQuery, id).Scan(
		&req.ID,
		&d.Origin.ProvinceID,
		&d.Origin.CountyID,
		&d.Origin.CityID,
		&d.Destination.ProvinceID,
		&d.Destination.CountyID,
		&d.Destination.CityID,
		&readyDate,
		&modeID,
		&incotermCode,
		&isHazardous,
		&isRefrigerated,
		&commodityName,
		&hsCode,
		&packageID,
		&units,
		&length,
		&width,
		&height,
		&weight,
		&volume,
		&contactName,
		&contactPhone,
		&contactEmail,
		&noteText,
		&status,
		&req.CreatedAt,
		&updatedAt,
		&slaDueAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shipment request", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get shipment request by ID", zap.Int64("shipment_request_id", id), zap.Error(err))
		return nil, err
	}

	req.Status = domain.RequestStatus(status)
	if readyDate.Valid {
		t := readyDate.Time.UTC()
		d.ReadyDate = &t
	}
	d.ShipmentModeID = modeID.Int64
	d.IncotermCode = nullString(incotermCode)
	d.IsHazardous = isHazardous.Bool
	d.IsRefrigerated = isRefrigerated.Bool
	d.CommodityName = commodityName.String
	d.HSCode = nullString(hsCode)
	d.PackageTypeID = packageID.Int64
	d.Units = int(units.Int64)
	d.LengthCM = nullFloat(length)
	d.WidthCM = nullFloat(width)
	d.HeightCM = nullFloat(height)
	d.WeightKG = weight.Float64
	d.VolumeM3 = volume.Float64
	d.ContactName = contactName.String
	d.ContactPhone = nullString(contactPhone)
	d.ContactEmail = nullString(contactEmail)
	d.NoteText = nullString(noteText)
	if updatedAt.Valid {
		req.UpdatedAt = updatedAt.Time
	}
	if slaDueAt.Valid {
		t := slaDueAt.Time
		req.SLADueAt = &t
	}

	return &req, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
