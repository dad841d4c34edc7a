package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/config"
	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/repository/postgres"
)

const sampleSize = 3

type report struct {
	DBOK      bool           `json:"db_ok"`
	Counts    map[string]int `json:"counts"`
	Sample    []samplePlace  `json:"sample"`
	DSNMasked string         `json:"db_url_masked"`
	Error     string         `json:"error,omitempty"`
}

type samplePlace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	out := report{
		Counts:    map[string]int{},
		Sample:    []samplePlace{},
		DSNMasked: cfg.Database.MaskedDSN(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := check(ctx, cfg, logger, &out); err != nil {
		out.Error = err.Error()
		printReport(out)
		os.Exit(1)
	}
	printReport(out)
}

func check(ctx context.Context, cfg *config.Config, logger *zap.Logger, out *report) error {
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	out.DBOK = true

	repos := postgres.NewRepositories(db, logger)
	for _, level := range []domain.GeoLevel{domain.GeoProvince, domain.GeoCounty, domain.GeoCity} {
		n, err := repos.Geo.CountPlaces(ctx, level)
		if err != nil {
			return err
		}
		out.Counts[string(level)] = n
	}

	provinces, err := repos.Geo.ListPlaces(ctx, domain.PlaceFilter{Level: domain.GeoProvince, Page: 1, Limit: sampleSize})
	if err != nil {
		return err
	}
	for _, p := range provinces {
		out.Sample = append(out.Sample, samplePlace{ID: p.ID, Name: p.Name})
	}
	return nil
}

func printReport(out report) {
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
