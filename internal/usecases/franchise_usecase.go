package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/repositories"
	"franquicias-latam.backend/pkg/utils"
)

// FranchiseUsecase handles franchise listing management
type FranchiseUsecase struct {
	franchiseRepo repositories.FranchiseRepository
	catalogRepo   repositories.CatalogRepository
}

// NewFranchiseUsecase creates a new franchise usecase
func NewFranchiseUsecase(franchiseRepo repositories.FranchiseRepository, catalogRepo repositories.CatalogRepository) *FranchiseUsecase {
	return &FranchiseUsecase{franchiseRepo: franchiseRepo, catalogRepo: catalogRepo}
}

// Create validates and persists a new franchise
func (u *FranchiseUsecase) Create(ctx context.Context, input *entities.CreateFranchiseInput) (*entities.Franchise, error) {
	if err := u.validateInput(ctx, input); err != nil {
		return nil, err
	}

	franchise := &entities.Franchise{
		ID:                 utils.GenerateUUIDv7(),
		Name:               input.Name,
		Description:        input.Description,
		Logo:               nullFromString(input.Logo),
		Video:              nullFromString(input.Video),
		InvestmentMin:      input.InvestmentMin,
		InvestmentMax:      input.InvestmentMax,
		SectorID:           input.SectorID,
		ContactEmail:       nullFromString(input.ContactEmail),
		Featured:           input.Featured,
		Active:             true,
		CoverageCountryIDs: input.CountryIDs,
	}
	if input.Active != nil {
		franchise.Active = *input.Active
	}

	if err := u.franchiseRepo.Create(ctx, franchise); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return franchise, nil
}

// Update overwrites an existing franchise and its coverage set
func (u *FranchiseUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateFranchiseInput) (*entities.Franchise, error) {
	if err := u.validateInput(ctx, input); err != nil {
		return nil, err
	}

	franchise, err := u.franchiseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Franquicia no encontrada")
		}
		return nil, domainerrors.InternalError(err)
	}

	franchise.Name = input.Name
	franchise.Description = input.Description
	franchise.Logo = nullFromString(input.Logo)
	franchise.Video = nullFromString(input.Video)
	franchise.InvestmentMin = input.InvestmentMin
	franchise.InvestmentMax = input.InvestmentMax
	franchise.SectorID = input.SectorID
	franchise.ContactEmail = nullFromString(input.ContactEmail)
	franchise.Featured = input.Featured
	franchise.CoverageCountryIDs = input.CountryIDs
	if input.Active != nil {
		franchise.Active = *input.Active
	}

	if err := u.franchiseRepo.Update(ctx, franchise); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return franchise, nil
}

// Get returns one franchise for the public detail page.
func (u *FranchiseUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Franchise, error) {
	franchise, err := u.franchiseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Franquicia no encontrada")
		}
		return nil, domainerrors.InternalError(err)
	}
	return franchise, nil
}

// List returns all franchises for the admin view, newest first.
func (u *FranchiseUsecase) List(ctx context.Context) ([]*entities.Franchise, error) {
	franchises, err := u.franchiseRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return franchises, nil
}

// Delete removes a franchise listing
func (u *FranchiseUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.franchiseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Franquicia no encontrada")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

func (u *FranchiseUsecase) validateInput(ctx context.Context, input *entities.CreateFranchiseInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Description) == "" {
		return domainerrors.BadRequest("Nombre y descripcion son requeridos")
	}
	if input.InvestmentMin <= 0 || input.InvestmentMax <= 0 {
		return domainerrors.BadRequest("Los montos de inversion deben ser positivos")
	}
	if input.InvestmentMin >= input.InvestmentMax {
		return domainerrors.BadRequest("El monto minimo debe ser menor al maximo")
	}

	ok, err := u.catalogRepo.SectorsExist(ctx, []uuid.UUID{input.SectorID})
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if !ok {
		return domainerrors.BadRequest("Sector invalido")
	}
	if len(input.CountryIDs) > 0 {
		ok, err := u.catalogRepo.CountriesExist(ctx, input.CountryIDs)
		if err != nil {
			return domainerrors.InternalError(err)
		}
		if !ok {
			return domainerrors.BadRequest("Pais invalido")
		}
	}
	return nil
}

func nullFromString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
