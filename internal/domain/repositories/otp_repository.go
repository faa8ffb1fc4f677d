package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"franquicias-latam.backend/internal/domain/entities"
)

// OtpRepository defines OTP verification row operations. Increment and
// mark-verified are conditional single-row updates keyed by row ID so that
// concurrent verify attempts cannot lose updates.
type OtpRepository interface {
	Create(ctx context.Context, v *entities.OtpVerification) error
	// LatestActive returns the most recent unverified, unexpired row for
	// phone, or ErrNotFound.
	LatestActive(ctx context.Context, phone string, now time.Time) (*entities.OtpVerification, error)
	// LatestCreatedAt returns the creation time of the newest row for phone
	// regardless of state, or ErrNotFound when the phone has no rows.
	LatestCreatedAt(ctx context.Context, phone string) (time.Time, error)
	// CountSince counts issuances for phone created at or after since.
	CountSince(ctx context.Context, phone string, since time.Time) (int64, error)
	// DeleteUnverified removes all unverified rows for phone.
	DeleteUnverified(ctx context.Context, phone string) error
	// DeleteExpiredUnverified removes unverified rows past expiry, any phone.
	DeleteExpiredUnverified(ctx context.Context, now time.Time) error
	// IncrementAttempts atomically bumps the attempt counter of one row.
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	// MarkVerified flips verified on one row; ErrNotFound if the row was
	// already verified or deleted (enforces single use).
	MarkVerified(ctx context.Context, id uuid.UUID) error
	// HasVerified reports whether phone has a verified, unexpired row.
	HasVerified(ctx context.Context, phone string, now time.Time) (bool, error)
}
