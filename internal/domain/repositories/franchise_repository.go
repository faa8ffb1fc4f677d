package repositories

import (
	"context"

	"github.com/google/uuid"
	"franquicias-latam.backend/internal/domain/entities"
)

// FranchiseRepository defines franchise data operations
type FranchiseRepository interface {
	Create(ctx context.Context, franchise *entities.Franchise) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Franchise, error)
	// ListActive returns active franchises with sector and coverage data
	// loaded, in creation order. This is the matching candidate set.
	ListActive(ctx context.Context) ([]*entities.Franchise, error)
	// List returns all franchises (admin view), newest first.
	List(ctx context.Context) ([]*entities.Franchise, error)
	Update(ctx context.Context, franchise *entities.Franchise) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogRepository defines sector and country lookups
type CatalogRepository interface {
	ListSectors(ctx context.Context) ([]*entities.Sector, error)
	ListCountries(ctx context.Context) ([]*entities.Country, error)
	CountryExists(ctx context.Context, id uuid.UUID) (bool, error)
	// SectorsExist reports whether every given sector ID resolves.
	SectorsExist(ctx context.Context, ids []uuid.UUID) (bool, error)
	// CountriesExist reports whether every given country ID resolves.
	CountriesExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}

// AdminUserRepository defines admin account lookups
type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error)
	Create(ctx context.Context, user *entities.AdminUser) error
}
