package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/infrastructure/models"
)

// FranchiseRepository implements franchise data operations
type FranchiseRepository struct {
	db *gorm.DB
}

// NewFranchiseRepository creates a new franchise repository
func NewFranchiseRepository(db *gorm.DB) *FranchiseRepository {
	return &FranchiseRepository{db: db}
}

// Create creates a franchise with its coverage rows
func (r *FranchiseRepository) Create(ctx context.Context, f *entities.Franchise) error {
	db := getDB(ctx, r.db).WithContext(ctx)
	m := &models.Franchise{
		ID:            f.ID,
		Name:          f.Name,
		Description:   f.Description,
		Logo:          f.Logo.Ptr(),
		Video:         f.Video.Ptr(),
		InvestmentMin: f.InvestmentMin,
		InvestmentMax: f.InvestmentMax,
		SectorID:      f.SectorID,
		ContactEmail:  f.ContactEmail.Ptr(),
		Featured:      f.Featured,
		Active:        f.Active,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
	if err := db.Create(m).Error; err != nil {
		return err
	}
	return r.replaceCoverage(db, f.ID, f.CoverageCountryIDs)
}

// GetByID gets a franchise with sector and coverage loaded
func (r *FranchiseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Franchise, error) {
	var m models.Franchise
	err := getDB(ctx, r.db).WithContext(ctx).
		Preload("Sector").
		Preload("Countries").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return franchiseToEntity(&m), nil
}

// ListActive returns the matching candidate set in creation order
func (r *FranchiseRepository) ListActive(ctx context.Context) ([]*entities.Franchise, error) {
	var franchiseModels []models.Franchise
	err := getDB(ctx, r.db).WithContext(ctx).
		Preload("Sector").
		Preload("Countries").
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&franchiseModels).Error
	if err != nil {
		return nil, err
	}
	return toFranchiseEntities(franchiseModels), nil
}

// List returns all franchises newest first (admin view)
func (r *FranchiseRepository) List(ctx context.Context) ([]*entities.Franchise, error) {
	var franchiseModels []models.Franchise
	err := getDB(ctx, r.db).WithContext(ctx).
		Preload("Sector").
		Preload("Countries").
		Order("created_at DESC").
		Find(&franchiseModels).Error
	if err != nil {
		return nil, err
	}

	out := toFranchiseEntities(franchiseModels)
	for _, f := range out {
		var count int64
		if err := getDB(ctx, r.db).WithContext(ctx).
			Model(&models.LeadFranchiseMatch{}).
			Where("franchise_id = ?", f.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		f.MatchCount = int(count)
	}
	return out, nil
}

// Update overwrites a franchise and replaces its coverage set
func (r *FranchiseRepository) Update(ctx context.Context, f *entities.Franchise) error {
	db := getDB(ctx, r.db).WithContext(ctx)
	updates := map[string]interface{}{
		"name":           f.Name,
		"description":    f.Description,
		"logo":           f.Logo.Ptr(),
		"video":          f.Video.Ptr(),
		"investment_min": f.InvestmentMin,
		"investment_max": f.InvestmentMax,
		"sector_id":      f.SectorID,
		"contact_email":  f.ContactEmail.Ptr(),
		"featured":       f.Featured,
		"active":         f.Active,
		"updated_at":     time.Now(),
	}
	result := db.Model(&models.Franchise{}).Where("id = ?", f.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return r.replaceCoverage(db, f.ID, f.CoverageCountryIDs)
}

// Delete removes a franchise with its coverage and match rows
func (r *FranchiseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := getDB(ctx, r.db).WithContext(ctx)
	if err := db.Where("franchise_id = ?", id).Delete(&models.FranchiseCountry{}).Error; err != nil {
		return err
	}
	if err := db.Where("franchise_id = ?", id).Delete(&models.LeadFranchiseMatch{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&models.Franchise{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *FranchiseRepository) replaceCoverage(db *gorm.DB, franchiseID uuid.UUID, countryIDs []uuid.UUID) error {
	if err := db.Where("franchise_id = ?", franchiseID).Delete(&models.FranchiseCountry{}).Error; err != nil {
		return err
	}
	if len(countryIDs) == 0 {
		return nil
	}
	rows := make([]models.FranchiseCountry, 0, len(countryIDs))
	for _, cid := range countryIDs {
		rows = append(rows, models.FranchiseCountry{FranchiseID: franchiseID, CountryID: cid})
	}
	return db.Create(&rows).Error
}

func toFranchiseEntities(franchiseModels []models.Franchise) []*entities.Franchise {
	out := make([]*entities.Franchise, 0, len(franchiseModels))
	for i := range franchiseModels {
		out = append(out, franchiseToEntity(&franchiseModels[i]))
	}
	return out
}

func franchiseToEntity(m *models.Franchise) *entities.Franchise {
	f := &entities.Franchise{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Logo:          null.StringFromPtr(m.Logo),
		Video:         null.StringFromPtr(m.Video),
		InvestmentMin: m.InvestmentMin,
		InvestmentMax: m.InvestmentMax,
		SectorID:      m.SectorID,
		ContactEmail:  null.StringFromPtr(m.ContactEmail),
		Featured:      m.Featured,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Sector.ID != uuid.Nil {
		f.SectorName = m.Sector.Name
		f.SectorEmoji = m.Sector.Emoji
	}
	for _, c := range m.Countries {
		f.CoverageCountryIDs = append(f.CoverageCountryIDs, c.CountryID)
	}
	return f
}
