package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/infrastructure/models"
)

// CatalogRepository implements sector and country lookups
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListSectors returns all sectors alphabetically
func (r *CatalogRepository) ListSectors(ctx context.Context) ([]*entities.Sector, error) {
	var sectorModels []models.Sector
	if err := getDB(ctx, r.db).WithContext(ctx).Order("name ASC").Find(&sectorModels).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Sector, 0, len(sectorModels))
	for _, m := range sectorModels {
		out = append(out, &entities.Sector{
			ID:        m.ID,
			Name:      m.Name,
			Slug:      m.Slug,
			Emoji:     m.Emoji,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// ListCountries returns all countries alphabetically
func (r *CatalogRepository) ListCountries(ctx context.Context) ([]*entities.Country, error) {
	var countryModels []models.Country
	if err := getDB(ctx, r.db).WithContext(ctx).Order("name ASC").Find(&countryModels).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Country, 0, len(countryModels))
	for _, m := range countryModels {
		out = append(out, &entities.Country{
			ID:        m.ID,
			Name:      m.Name,
			Code:      m.Code,
			PhoneCode: m.PhoneCode,
			Flag:      m.Flag,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// CountryExists reports whether a country ID resolves
func (r *CatalogRepository) CountryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.Country{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// SectorsExist reports whether every given sector ID resolves
func (r *CatalogRepository) SectorsExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int64
	err := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.Sector{}).
		Where("id IN ?", dedupIDs(ids)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == int64(len(dedupIDs(ids))), nil
}

// CountriesExist reports whether every given country ID resolves
func (r *CatalogRepository) CountriesExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	unique := dedupIDs(ids)
	var count int64
	err := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.Country{}).
		Where("id IN ?", unique).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == int64(len(unique)), nil
}

func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AdminUserRepository implements admin account lookups
type AdminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail gets an admin by email
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error) {
	var m models.AdminUser
	if err := getDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return adminToEntity(&m), nil
}

// GetByID gets an admin by ID
func (r *AdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error) {
	var m models.AdminUser
	if err := getDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return adminToEntity(&m), nil
}

// Create creates an admin account
func (r *AdminUserRepository) Create(ctx context.Context, user *entities.AdminUser) error {
	m := &models.AdminUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	return getDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func adminToEntity(m *models.AdminUser) *entities.AdminUser {
	return &entities.AdminUser{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         entities.AdminRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
