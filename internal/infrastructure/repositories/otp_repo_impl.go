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

// OtpRepository implements OTP verification row operations
type OtpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) *OtpRepository {
	return &OtpRepository{db: db}
}

// Create persists a freshly issued verification row
func (r *OtpRepository) Create(ctx context.Context, v *entities.OtpVerification) error {
	m := &models.OtpVerification{
		ID:        v.ID,
		Phone:     v.Phone,
		Code:      v.Code,
		Channel:   v.Channel,
		Verified:  v.Verified,
		Attempts:  v.Attempts,
		ExpiresAt: v.ExpiresAt,
		CreatedAt: v.CreatedAt,
	}
	return getDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// LatestActive returns the most recent unverified, unexpired row for phone
func (r *OtpRepository) LatestActive(ctx context.Context, phone string, now time.Time) (*entities.OtpVerification, error) {
	var m models.OtpVerification
	err := getDB(ctx, r.db).WithContext(ctx).
		Where("phone = ? AND verified = ? AND expires_at > ?", phone, false, now).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// LatestCreatedAt returns the creation time of the newest row for phone
func (r *OtpRepository) LatestCreatedAt(ctx context.Context, phone string) (time.Time, error) {
	var m models.OtpVerification
	err := getDB(ctx, r.db).WithContext(ctx).
		Select("created_at").
		Where("phone = ?", phone).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, domainerrors.ErrNotFound
		}
		return time.Time{}, err
	}
	return m.CreatedAt, nil
}

// CountSince counts issuances for phone created at or after since
func (r *OtpRepository) CountSince(ctx context.Context, phone string, since time.Time) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.OtpVerification{}).
		Where("phone = ? AND created_at >= ?", phone, since).
		Count(&count).Error
	return count, err
}

// DeleteUnverified removes every unverified row for phone, preventing
// ambiguous multi-code state after a reissue
func (r *OtpRepository) DeleteUnverified(ctx context.Context, phone string) error {
	return getDB(ctx, r.db).WithContext(ctx).
		Where("phone = ? AND verified = ?", phone, false).
		Delete(&models.OtpVerification{}).Error
}

// DeleteExpiredUnverified removes unverified rows past expiry for any phone
func (r *OtpRepository) DeleteExpiredUnverified(ctx context.Context, now time.Time) error {
	return getDB(ctx, r.db).WithContext(ctx).
		Where("verified = ? AND expires_at < ?", false, now).
		Delete(&models.OtpVerification{}).Error
}

// IncrementAttempts bumps the attempt counter with a single atomic UPDATE
// keyed by row ID, so concurrent wrong guesses cannot lose counts
func (r *OtpRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	result := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.OtpVerification{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkVerified flips verified on one row. The verified = false guard makes
// the code single-use under concurrent verify calls.
func (r *OtpRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	result := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.OtpVerification{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// HasVerified reports whether phone has a verified, unexpired row
func (r *OtpRepository) HasVerified(ctx context.Context, phone string, now time.Time) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).WithContext(ctx).
		Model(&models.OtpVerification{}).
		Where("phone = ? AND verified = ? AND expires_at >= ?", phone, true, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OtpRepository) toEntity(m *models.OtpVerification) *entities.OtpVerification {
	return &entities.OtpVerification{
		ID:        m.ID,
		Phone:     m.Phone,
		Code:      m.Code,
		Channel:   m.Channel,
		Verified:  m.Verified,
		Attempts:  m.Attempts,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}
