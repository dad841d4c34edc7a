package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

type catalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB, logger *zap.Logger) *catalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

func catalogTable(kind domain.CatalogKind) (string, error) {
	table := kind.Table()
	if table == "" {
		return "", fmt.Errorf("unknown catalog %q", kind)
	}
	return table, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogItem, error) {
	table, err := catalogTable(kind)
	if err != nil {
		return nil, err
	}
	query := "SELECT id, code, name_fa FROM " + table + " WHERE id = $1"
	return r.getOne(ctx, kind, query, strconv.FormatInt(id, 10), id)
}

func (r *catalogRepository) GetByCode(ctx context.Context, kind domain.CatalogKind, code string) (*domain.CatalogItem, error) {
	table, err := catalogTable(kind)
	if err != nil {
		return nil, err
	}
	query := "SELECT id, code, name_fa FROM " + table + " WHERE LOWER(code) = LOWER($1)"
	return r.getOne(ctx, kind, query, code, code)
}

func (r *catalogRepository) getOne(ctx context.Context, kind domain.CatalogKind, query, key string, arg interface{}) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&item.ID, &item.Code, &item.Name)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: string(kind), ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to get catalog item", zap.String("catalog", string(kind)), zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) Search(ctx context.Context, kind domain.CatalogKind, query string, limit int) ([]domain.CatalogItem, int, error) {
	table, err := catalogTable(kind)
	if err != nil {
		return nil, 0, err
	}

	where := ""
	var args []interface{}
	if query != "" {
		where = " WHERE LOWER(code) LIKE $1 OR LOWER(name_fa) LIKE $1"
		args = append(args, "%"+escapeLike(strings.ToLower(query))+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+where, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count catalog items", zap.String("catalog", string(kind)), zap.Error(err))
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf("SELECT id, code, name_fa FROM %s%s ORDER BY name_fa ASC, code ASC LIMIT $%d", table, where, len(args)+1)
	items, err := r.queryItems(ctx, dataQuery, append(args, limit)...)
	if err != nil {
		r.logger.Error("Failed to search catalog", zap.String("catalog", string(kind)), zap.Error(err))
		return nil, 0, err
	}

	return items, total, nil
}

func (r *catalogRepository) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	table, err := catalogTable(kind)
	if err != nil {
		return nil, err
	}
	items, err := r.queryItems(ctx, "SELECT id, code, name_fa FROM "+table+" ORDER BY id")
	if err != nil {
		r.logger.Error("Failed to list catalog", zap.String("catalog", string(kind)), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.CatalogItem, 0)
	for rows.Next() {
		var item domain.CatalogItem
		if err := rows.Scan(&item.ID, &item.Code, &item.Name); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *catalogRepository) ListIncoterms(ctx context.Context, mode string) ([]domain.Incoterm, error) {
	query := "SELECT id, code, name_fa, COALESCE(desc_fa, ''), modes FROM incoterm"
	var args []interface{}
	if mode != "" {
		query += " WHERE EXISTS (SELECT 1 FROM unnest(modes) AS m WHERE LOWER(m) = LOWER($1))"
		args = append(args, mode)
	}
	query += " ORDER BY code"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list incoterms", zap.String("mode", mode), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	incoterms := make([]domain.Incoterm, 0)
	for rows.Next() {
		var inc domain.Incoterm
		if err := rows.Scan(&inc.ID, &inc.Code, &inc.Name, &inc.Description, pq.Array(&inc.Modes)); err != nil {
			return nil, err
		}
		incoterms = append(incoterms, inc)
	}

	return incoterms, rows.Err()
}
