package service

import (
	"context"
	stderrors "errors"

	"github.com/jafarshop/shipment-intake/internal/domain"
	"github.com/jafarshop/shipment-intake/internal/repository"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

// repoLookup resolves validator references against the repositories.
// A missing row is reported as not found, never as an error.
type repoLookup struct {
	repos *repository.Repositories
}

func (l *repoLookup) CatalogByID(ctx context.Context, kind domain.CatalogKind, id int64) (domain.CatalogItem, bool, error) {
	item, err := l.repos.Catalog.GetByID(ctx, kind, id)
	return catalogResult(item, err)
}

func (l *repoLookup) CatalogByCode(ctx context.Context, kind domain.CatalogKind, code string) (domain.CatalogItem, bool, error) {
	item, err := l.repos.Catalog.GetByCode(ctx, kind, code)
	return catalogResult(item, err)
}

func (l *repoLookup) Place(ctx context.Context, level domain.GeoLevel, id int64) (domain.Place, bool, error) {
	place, err := l.repos.Geo.GetPlace(ctx, level, id)
	if isNotFound(err) {
		return domain.Place{}, false, nil
	}
	if err != nil {
		return domain.Place{}, false, err
	}
	return *place, true, nil
}

func catalogResult(item *domain.CatalogItem, err error) (domain.CatalogItem, bool, error) {
	if isNotFound(err) {
		return domain.CatalogItem{}, false, nil
	}
	if err != nil {
		return domain.CatalogItem{}, false, err
	}
	return *item, true, nil
}

func isNotFound(err error) bool {
	var notFound *errors.ErrNotFound
	return stderrors.As(err, &notFound)
}
