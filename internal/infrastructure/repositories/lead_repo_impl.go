package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/infrastructure/models"
)

// LeadRepository implements lead and match data operations
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create creates a new lead with its sector rows
func (r *LeadRepository) Create(ctx context.Context, lead *entities.Lead) error {
	db := getDB(ctx, r.db).WithContext(ctx)

	m := &models.Lead{
		ID:              lead.ID,
		Name:            lead.Name,
		Email:           lead.Email,
		Phone:           lead.Phone,
		PhoneVerified:   lead.PhoneVerified,
		CountryID:       lead.CountryID,
		InvestmentRange: string(lead.InvestmentRange),
		ExperienceLevel: string(lead.ExperienceLevel),
		Viewed:          lead.Viewed,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}
	if err := db.Create(m).Error; err != nil {
		return err
	}
	return r.replaceSectors(db, lead.ID, lead.SectorIDs)
}

// GetByID gets a lead by ID with sectors and matches loaded, matches
// ordered by score descending
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error) {
	var m models.Lead
	err := getDB(ctx, r.db).WithContext(ctx).
		Preload("Sectors").
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("score DESC")
		}).
		Preload("Matches.Franchise").
		Preload("Matches.Franchise.Sector").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByEmailOrPhone returns the dedup target for a submission
func (r *LeadRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entities.Lead, error) {
	var m models.Lead
	err := getDB(ctx, r.db).WithContext(ctx).
		Preload("Sectors").
		Where("email = ? OR phone = ?", email, phone).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update overwrites the lead's fields and replaces its sector set wholesale
func (r *LeadRepository) Update(ctx context.Context, lead *entities.Lead) error {
	db := getDB(ctx, r.db).WithContext(ctx)

	updates := map[string]interface{}{
		"name":             lead.Name,
		"email":            lead.Email,
		"phone":            lead.Phone,
		"phone_verified":   lead.PhoneVerified,
		"country_id":       lead.CountryID,
		"investment_range": string(lead.InvestmentRange),
		"experience_level": string(lead.ExperienceLevel),
		"viewed":           lead.Viewed,
		"updated_at":       time.Now(),
	}
	result := db.Model(&models.Lead{}).Where("id = ?", lead.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return r.replaceSectors(db, lead.ID, lead.SectorIDs)
}

// List returns leads newest first with matches ordered by score
func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]*entities.Lead, int64, error) {
	db := getDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Lead{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leadModels []models.Lead
	err := db.
		Preload("Sectors").
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("score DESC")
		}).
		Preload("Matches.Franchise").
		Preload("Matches.Franchise.Sector").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leadModels).Error
	if err != nil {
		return nil, 0, err
	}

	leads := make([]*entities.Lead, 0, len(leadModels))
	for i := range leadModels {
		leads = append(leads, r.toEntity(&leadModels[i]))
	}
	return leads, total, nil
}

// SetViewed toggles the admin viewed flag
func (r *LeadRepository) SetViewed(ctx context.Context, id uuid.UUID, viewed bool) error {
	result := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ?", id).
		Update("viewed", viewed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a lead with its sector and match rows
func (r *LeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := getDB(ctx, r.db).WithContext(ctx)
	if err := db.Where("lead_id = ?", id).Delete(&models.LeadSector{}).Error; err != nil {
		return err
	}
	if err := db.Where("lead_id = ?", id).Delete(&models.LeadFranchiseMatch{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&models.Lead{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Stats computes the admin dashboard counters
func (r *LeadRepository) Stats(ctx context.Context, startOfMonth time.Time) (*entities.LeadStats, error) {
	db := getDB(ctx, r.db).WithContext(ctx)
	stats := &entities.LeadStats{}

	if err := db.Model(&models.Lead{}).Count(&stats.TotalLeads).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Lead{}).Where("created_at >= ?", startOfMonth).Count(&stats.LeadsThisMonth).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Lead{}).Where("viewed = ?", false).Count(&stats.UnviewedLeads).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// CreateMatches inserts the freshly scored match rows
func (r *LeadRepository) CreateMatches(ctx context.Context, matches []*entities.Match) error {
	if len(matches) == 0 {
		return nil
	}
	rows := make([]models.LeadFranchiseMatch, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, models.LeadFranchiseMatch{
			ID:          m.ID,
			LeadID:      m.LeadID,
			FranchiseID: m.FranchiseID,
			Score:       m.Score,
			Contacted:   m.Contacted,
			CreatedAt:   m.CreatedAt,
		})
	}
	return getDB(ctx, r.db).WithContext(ctx).Create(&rows).Error
}

// DeleteMatchesByLead removes all match rows for a lead before rescoring
func (r *LeadRepository) DeleteMatchesByLead(ctx context.Context, leadID uuid.UUID) error {
	return getDB(ctx, r.db).WithContext(ctx).
		Where("lead_id = ?", leadID).
		Delete(&models.LeadFranchiseMatch{}).Error
}

// SetMatchContacted toggles the contacted flag on one match
func (r *LeadRepository) SetMatchContacted(ctx context.Context, matchID uuid.UUID, contacted bool) error {
	result := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.LeadFranchiseMatch{}).
		Where("id = ?", matchID).
		Update("contacted", contacted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) replaceSectors(db *gorm.DB, leadID uuid.UUID, sectorIDs []uuid.UUID) error {
	if err := db.Where("lead_id = ?", leadID).Delete(&models.LeadSector{}).Error; err != nil {
		return err
	}
	if len(sectorIDs) == 0 {
		return nil
	}
	rows := make([]models.LeadSector, 0, len(sectorIDs))
	for _, sid := range sectorIDs {
		rows = append(rows, models.LeadSector{LeadID: leadID, SectorID: sid})
	}
	return db.Create(&rows).Error
}

func (r *LeadRepository) toEntity(m *models.Lead) *entities.Lead {
	lead := &entities.Lead{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		PhoneVerified:   m.PhoneVerified,
		CountryID:       m.CountryID,
		InvestmentRange: entities.InvestmentRange(m.InvestmentRange),
		ExperienceLevel: entities.ExperienceLevel(m.ExperienceLevel),
		Viewed:          m.Viewed,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, s := range m.Sectors {
		lead.SectorIDs = append(lead.SectorIDs, s.SectorID)
	}
	for i := range m.Matches {
		mm := &m.Matches[i]
		match := &entities.Match{
			ID:          mm.ID,
			LeadID:      mm.LeadID,
			FranchiseID: mm.FranchiseID,
			Score:       mm.Score,
			Contacted:   mm.Contacted,
			CreatedAt:   mm.CreatedAt,
		}
		if mm.Franchise.ID != uuid.Nil {
			match.Franchise = franchiseToEntity(&mm.Franchise)
		}
		lead.Matches = append(lead.Matches, match)
	}
	return lead
}
