package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
)

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS province (
		id BIGINT PRIMARY KEY,
		name_fa TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS county (
		id BIGINT PRIMARY KEY,
		province_id BIGINT NOT NULL REFERENCES province(id),
		name_fa TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS city (
		id BIGINT PRIMARY KEY,
		county_id BIGINT NOT NULL REFERENCES county(id),
		name_fa TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shipment_mode (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name_fa TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS package_type (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name_fa TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS incoterm (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name_fa TEXT NOT NULL,
		desc_fa TEXT,
		modes TEXT[]
	)`,
	`CREATE TABLE IF NOT EXISTS shipment_request (
		id BIGSERIAL PRIMARY KEY,
		origin_province_id BIGINT NOT NULL,
		origin_county_id BIGINT NOT NULL,
		origin_city_id BIGINT NOT NULL,
		dest_province_id BIGINT NOT NULL,
		dest_county_id BIGINT NOT NULL,
		dest_city_id BIGINT NOT NULL,
		mode_shipment_mode BIGINT,
		package_type BIGINT,
		is_hazardous BOOLEAN NOT NULL DEFAULT FALSE,
		is_refrigerated BOOLEAN NOT NULL DEFAULT FALSE,
		commodity_name TEXT,
		units INTEGER,
		weight_kg NUMERIC,
		volume_m3 NUMERIC,
		contact_name TEXT,
		status_request_status TEXT NOT NULL DEFAULT 'NEW',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// alterStatements add the columns that older shipment_request tables lack
// and drop the scale older tables put on the measure columns
var alterStatements = []string{
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS ready_date DATE",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS incoterm_code TEXT",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS hs_code TEXT",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS length_cm NUMERIC",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS width_cm NUMERIC",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS height_cm NUMERIC",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS contact_phone TEXT",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS contact_email TEXT",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS note_text TEXT",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ",
	"ALTER TABLE shipment_request ADD COLUMN IF NOT EXISTS sla_due_at TIMESTAMPTZ",
	// measures are stored without a fixed scale so they read back exactly as submitted
	"ALTER TABLE shipment_request ALTER COLUMN length_cm TYPE NUMERIC",
	"ALTER TABLE shipment_request ALTER COLUMN width_cm TYPE NUMERIC",
	"ALTER TABLE shipment_request ALTER COLUMN height_cm TYPE NUMERIC",
	"ALTER TABLE shipment_request ALTER COLUMN weight_kg TYPE NUMERIC",
	"ALTER TABLE shipment_request ALTER COLUMN volume_m3 TYPE NUMERIC",
}

const (
	upsertCatalogQuery = `
		INSERT INTO %s (id, code, name_fa) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name_fa = EXCLUDED.name_fa
	`
	upsertIncotermQuery = `
		INSERT INTO incoterm (id, code, name_fa, desc_fa, modes) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			name_fa = EXCLUDED.name_fa,
			desc_fa = EXCLUDED.desc_fa,
			modes = COALESCE(incoterm.modes, EXCLUDED.modes)
	`
)

// EnsureSchema creates the tables, backfills missing columns and seeds the
// catalog. Every statement is idempotent, so it is safe on every start.
func EnsureSchema(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range append(append([]string(nil), createStatements...), alterStatements...) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	seeds := []struct {
		table string
		items []domain.CatalogItem
	}{
		{domain.CatalogShipmentModes.Table(), domain.DefaultShipmentModes},
		{domain.CatalogPackageTypes.Table(), domain.DefaultPackageTypes},
	}
	for _, seed := range seeds {
		query := fmt.Sprintf(upsertCatalogQuery, seed.table)
		for _, item := range seed.items {
			if _, err := tx.ExecContext(ctx, query, item.ID, item.Code, item.Name); err != nil {
				return fmt.Errorf("failed to seed %s: %w", seed.table, err)
			}
		}
	}
	for _, inc := range domain.DefaultIncoterms {
		if _, err := tx.ExecContext(ctx, upsertIncotermQuery, inc.ID, inc.Code, inc.Name, inc.Description, pq.Array(inc.Modes)); err != nil {
			return fmt.Errorf("failed to seed incoterm: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	logger.Info("Database schema ready",
		zap.Int("tables", len(createStatements)),
		zap.Int("catalog_rows", len(domain.DefaultShipmentModes)+len(domain.DefaultPackageTypes)+len(domain.DefaultIncoterms)),
	)
	return nil
}
