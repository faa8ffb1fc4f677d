package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/usecases"
	"franquicias-latam.backend/pkg/cache"
)

func TestCatalogListSectorsCachesRepoResult(t *testing.T) {
	catalogRepo := new(MockCatalogRepository)
	uc := usecases.NewCatalogUsecase(catalogRepo, cache.New(time.Minute))
	ctx := context.Background()

	sectors := []*entities.Sector{{Name: "Comida", Slug: "comida"}}
	catalogRepo.On("ListSectors", mock.Anything).Return(sectors, nil).Once()

	got, err := uc.ListSectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, sectors, got)

	// second call is served from cache, the mock allows one call only
	got, err = uc.ListSectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, sectors, got)

	catalogRepo.AssertExpectations(t)
}

func TestCatalogListCountriesCachesRepoResult(t *testing.T) {
	catalogRepo := new(MockCatalogRepository)
	uc := usecases.NewCatalogUsecase(catalogRepo, cache.New(time.Minute))
	ctx := context.Background()

	countries := []*entities.Country{{Name: "Colombia", Code: "CO"}}
	catalogRepo.On("ListCountries", mock.Anything).Return(countries, nil).Once()

	got, err := uc.ListCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, countries, got)

	got, err = uc.ListCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, countries, got)

	catalogRepo.AssertExpectations(t)
}

func TestCatalogInvalidateCacheForcesReload(t *testing.T) {
	catalogRepo := new(MockCatalogRepository)
	uc := usecases.NewCatalogUsecase(catalogRepo, cache.New(time.Minute))
	ctx := context.Background()

	catalogRepo.On("ListSectors", mock.Anything).Return([]*entities.Sector{}, nil).Twice()
	catalogRepo.On("ListCountries", mock.Anything).Return([]*entities.Country{}, nil).Twice()

	_, err := uc.ListSectors(ctx)
	require.NoError(t, err)
	_, err = uc.ListCountries(ctx)
	require.NoError(t, err)

	uc.InvalidateCache()

	_, err = uc.ListSectors(ctx)
	require.NoError(t, err)
	_, err = uc.ListCountries(ctx)
	require.NoError(t, err)

	catalogRepo.AssertExpectations(t)
}

func TestCatalogRepoErrorIsInternal(t *testing.T) {
	catalogRepo := new(MockCatalogRepository)
	uc := usecases.NewCatalogUsecase(catalogRepo, cache.New(time.Minute))

	catalogRepo.On("ListSectors", mock.Anything).Return(nil, errors.New("db down"))

	_, err := uc.ListSectors(context.Background())
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeInternalError, appErr.Code)
	assert.Equal(t, 500, appErr.Status)
}
