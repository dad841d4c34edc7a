package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

type geoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGeoRepository creates a new geography repository
func NewGeoRepository(db *sql.DB, logger *zap.Logger) *geoRepository {
	return &geoRepository{
		db:     db,
		logger: logger,
	}
}

// parentExpr selects the parent id of a level; provinces report zero
func parentExpr(level domain.GeoLevel) string {
	if col := level.ParentColumn(); col != "" {
		return col
	}
	return "0"
}

func (r *geoRepository) GetPlace(ctx context.Context, level domain.GeoLevel, id int64) (*domain.Place, error) {
	table := level.Table()
	if table == "" {
		return nil, fmt.Errorf("unknown geography level %q", level)
	}
	query := fmt.Sprintf("SELECT id, %s, name_fa FROM %s WHERE id = $1", parentExpr(level), table)

	place := domain.Place{Level: level}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&place.ID, &place.ParentID, &place.Name)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: string(level), ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get place", zap.String("level", string(level)), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &place, nil
}

func (r *geoRepository) ListPlaces(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error) {
	table := filter.Level.Table()
	if table == "" {
		return nil, fmt.Errorf("unknown geography level %q", filter.Level)
	}
	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 {
		return []domain.Place{}, nil
	}

	var (
		conds []string
		args  []interface{}
	)
	if col := filter.Level.ParentColumn(); col != "" && filter.ParentID != 0 {
		args = append(args, filter.ParentID)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		conds = append(conds, fmt.Sprintf("name_fa ILIKE $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT id, %s, name_fa FROM %s", parentExpr(filter.Level), table)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit, offset)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list places", zap.String("level", string(filter.Level)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	places := make([]domain.Place, 0)
	for rows.Next() {
		p := domain.Place{Level: filter.Level}
		if err := rows.Scan(&p.ID, &p.ParentID, &p.Name); err != nil {
			return nil, err
		}
		places = append(places, p)
	}

	return places, rows.Err()
}

func (r *geoRepository) CountPlaces(ctx context.Context, level domain.GeoLevel) (int, error) {
	table := level.Table()
	if table == "" {
		return 0, fmt.Errorf("unknown geography level %q", level)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		r.logger.Error("Failed to count places", zap.String("level", string(level)), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// escapeLike quotes the LIKE wildcards of user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
