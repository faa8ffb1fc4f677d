package usecases

import (
	"context"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/repositories"
	"franquicias-latam.backend/pkg/cache"
)

const (
	cacheKeySectors   = "catalog:sectors"
	cacheKeyCountries = "catalog:countries"
)

// CatalogUsecase serves the sector and country lists through an injected
// TTL cache. Seed and admin writes invalidate explicitly.
type CatalogUsecase struct {
	catalogRepo repositories.CatalogRepository
	cache       *cache.TTLCache
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(catalogRepo repositories.CatalogRepository, c *cache.TTLCache) *CatalogUsecase {
	return &CatalogUsecase{catalogRepo: catalogRepo, cache: c}
}

// ListSectors returns all sectors, alphabetical.
func (u *CatalogUsecase) ListSectors(ctx context.Context) ([]*entities.Sector, error) {
	if cached, ok := u.cache.Get(cacheKeySectors); ok {
		return cached.([]*entities.Sector), nil
	}
	sectors, err := u.catalogRepo.ListSectors(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	u.cache.Set(cacheKeySectors, sectors)
	return sectors, nil
}

// ListCountries returns all countries, alphabetical.
func (u *CatalogUsecase) ListCountries(ctx context.Context) ([]*entities.Country, error) {
	if cached, ok := u.cache.Get(cacheKeyCountries); ok {
		return cached.([]*entities.Country), nil
	}
	countries, err := u.catalogRepo.ListCountries(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	u.cache.Set(cacheKeyCountries, countries)
	return countries, nil
}

// InvalidateCache drops the cached lists after catalog writes.
func (u *CatalogUsecase) InvalidateCache() {
	u.cache.Invalidate(cacheKeySectors)
	u.cache.Invalidate(cacheKeyCountries)
}
