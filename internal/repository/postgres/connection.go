package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/config"
	"github.com/jafarshop/shipment-intake/internal/repository"
)

// NewConnection opens and verifies a connection pool
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewRepositories wires every postgres repository to db
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		ShipmentRequest: NewShipmentRequestRepository(db, logger),
		Geo:             NewGeoRepository(db, logger),
		Catalog:         NewCatalogRepository(db, logger),
		Health:          &healthChecker{db: db},
	}
}

type healthChecker struct {
	db *sql.DB
}

func (h *healthChecker) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
