package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"franquicias-latam.backend/internal/domain/entities"
)

// LeadRepository defines lead and match data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entities.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error)
	// FindByEmailOrPhone returns the dedup target, or ErrNotFound.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entities.Lead, error)
	// Update overwrites the lead's fields and replaces its sector set
	// wholesale.
	Update(ctx context.Context, lead *entities.Lead) error
	List(ctx context.Context, limit, offset int) ([]*entities.Lead, int64, error)
	SetViewed(ctx context.Context, id uuid.UUID, viewed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, startOfMonth time.Time) (*entities.LeadStats, error)

	// Matches
	CreateMatches(ctx context.Context, matches []*entities.Match) error
	DeleteMatchesByLead(ctx context.Context, leadID uuid.UUID) error
	SetMatchContacted(ctx context.Context, matchID uuid.UUID, contacted bool) error
}
