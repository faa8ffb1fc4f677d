package usecases

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/repositories"
	"franquicias-latam.backend/pkg/logger"
	"franquicias-latam.backend/pkg/utils"
)

// LeadSummary is the condensed lead view handed to the notifier.
type LeadSummary struct {
	Name            string
	Email           string
	Phone           string
	Country         string
	InvestmentRange string
	MatchCount      int
}

// LeadNotifier announces a created or updated lead. Best effort: failures
// are logged by the implementation, never returned.
type LeadNotifier interface {
	NotifyLeadCreated(ctx context.Context, summary LeadSummary)
}

// LeadUsecase orchestrates lead intake: validation, the phone-verified
// gate, dedup/upsert, scoring and match persistence, plus the admin-side
// lead operations.
type LeadUsecase struct {
	leadRepo      repositories.LeadRepository
	franchiseRepo repositories.FranchiseRepository
	catalogRepo   repositories.CatalogRepository
	otp           *OtpUsecase
	uow           repositories.UnitOfWork
	notifier      LeadNotifier
}

// NewLeadUsecase creates a new lead usecase
func NewLeadUsecase(
	leadRepo repositories.LeadRepository,
	franchiseRepo repositories.FranchiseRepository,
	catalogRepo repositories.CatalogRepository,
	otp *OtpUsecase,
	uow repositories.UnitOfWork,
	notifier LeadNotifier,
) *LeadUsecase {
	return &LeadUsecase{
		leadRepo:      leadRepo,
		franchiseRepo: franchiseRepo,
		catalogRepo:   catalogRepo,
		otp:           otp,
		uow:           uow,
		notifier:      notifier,
	}
}

// SubmitLead runs the full intake pipeline and returns the ranked matches.
// Deduplication keys on email or phone: a resubmission replaces the lead's
// profile wholesale and recomputes its matches.
func (u *LeadUsecase) SubmitLead(ctx context.Context, input *entities.CreateLeadInput) (*entities.SubmitLeadOutput, error) {
	if err := u.validateInput(ctx, input); err != nil {
		return nil, err
	}

	verified, err := u.otp.IsPhoneVerified(ctx, input.Phone)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if !verified {
		return nil, domainerrors.PhoneNotVerified("El telefono no ha sido verificado. Por favor completa la verificacion SMS.")
	}

	candidates, err := u.franchiseRepo.ListActive(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	var (
		lead    *entities.Lead
		ranked  []ScoredFranchise
		updated bool
	)
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		existing, err := u.leadRepo.FindByEmailOrPhone(ctx, input.Email, input.Phone)
		switch {
		case err == nil:
			updated = true
			existing.Name = input.Name
			existing.Email = input.Email
			existing.Phone = input.Phone
			existing.PhoneVerified = true
			existing.CountryID = input.CountryID
			existing.InvestmentRange = input.InvestmentRange
			existing.ExperienceLevel = input.ExperienceLevel
			existing.SectorIDs = input.Sectors
			existing.Viewed = false
			if err := u.leadRepo.Update(ctx, existing); err != nil {
				return err
			}
			if err := u.leadRepo.DeleteMatchesByLead(ctx, existing.ID); err != nil {
				return err
			}
			lead = existing
		case errors.Is(err, domainerrors.ErrNotFound):
			lead = &entities.Lead{
				ID:              utils.GenerateUUIDv7(),
				Name:            input.Name,
				Email:           input.Email,
				Phone:           input.Phone,
				PhoneVerified:   true,
				CountryID:       input.CountryID,
				InvestmentRange: input.InvestmentRange,
				ExperienceLevel: input.ExperienceLevel,
				SectorIDs:       input.Sectors,
			}
			if err := u.leadRepo.Create(ctx, lead); err != nil {
				return err
			}
		default:
			return err
		}

		ranked = Rank(lead.Profile(), candidates)
		if len(ranked) == 0 {
			return nil
		}
		matches := make([]*entities.Match, 0, len(ranked))
		for _, r := range ranked {
			matches = append(matches, &entities.Match{
				ID:          utils.GenerateUUIDv7(),
				LeadID:      lead.ID,
				FranchiseID: r.Franchise.ID,
				Score:       r.Score,
			})
		}
		return u.leadRepo.CreateMatches(ctx, matches)
	})
	if err != nil {
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, domainerrors.InternalError(err)
	}

	u.notify(ctx, lead, len(ranked))

	out := &entities.SubmitLeadOutput{
		LeadID:  lead.ID,
		Matches: make([]*entities.MatchedFranchise, 0, len(ranked)),
		Updated: updated,
	}
	for _, r := range ranked {
		f := r.Franchise
		out.Matches = append(out.Matches, &entities.MatchedFranchise{
			ID:            f.ID,
			Name:          f.Name,
			Description:   f.Description,
			Logo:          f.Logo.String,
			InvestmentMin: f.InvestmentMin,
			InvestmentMax: f.InvestmentMax,
			SectorName:    f.SectorName,
			SectorEmoji:   f.SectorEmoji,
			Score:         r.Score,
		})
	}
	return out, nil
}

func (u *LeadUsecase) validateInput(ctx context.Context, input *entities.CreateLeadInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Phone) == "" {
		return domainerrors.BadRequest("Todos los campos son requeridos")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domainerrors.BadRequest("Email invalido")
	}
	if !ValidPhone(input.Phone) {
		return domainerrors.BadRequest("Numero de telefono invalido")
	}
	if len(input.Sectors) == 0 {
		return domainerrors.BadRequest("Selecciona al menos un sector")
	}
	if !input.InvestmentRange.Valid() {
		return domainerrors.BadRequest("Rango de inversion invalido")
	}
	if !input.ExperienceLevel.Valid() {
		return domainerrors.BadRequest("Nivel de experiencia invalido")
	}

	ok, err := u.catalogRepo.CountryExists(ctx, input.CountryID)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if !ok {
		return domainerrors.BadRequest("Pais invalido")
	}
	ok, err = u.catalogRepo.SectorsExist(ctx, input.Sectors)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if !ok {
		return domainerrors.BadRequest("Sector invalido")
	}
	return nil
}

// notify fires the admin notification without blocking the response.
func (u *LeadUsecase) notify(ctx context.Context, lead *entities.Lead, matchCount int) {
	if u.notifier == nil {
		return
	}
	summary := LeadSummary{
		Name:            lead.Name,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Country:         lead.CountryID.String(),
		InvestmentRange: lead.InvestmentRange.Label(),
		MatchCount:      matchCount,
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(context.Background(), "lead notification panicked", zap.Any("panic", r))
			}
		}()
		nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		u.notifier.NotifyLeadCreated(nctx, summary)
	}()
}

// GetLead returns one lead with its matches for the admin detail view.
func (u *LeadUsecase) GetLead(ctx context.Context, id uuid.UUID) (*entities.Lead, error) {
	lead, err := u.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Lead no encontrado")
		}
		return nil, domainerrors.InternalError(err)
	}
	return lead, nil
}

// ListLeads returns a page of leads, newest first.
func (u *LeadUsecase) ListLeads(ctx context.Context, params utils.PaginationParams) ([]*entities.Lead, int64, error) {
	leads, total, err := u.leadRepo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	return leads, total, nil
}

// SetViewed flags a lead as reviewed (or not) by an admin.
func (u *LeadUsecase) SetViewed(ctx context.Context, id uuid.UUID, viewed bool) error {
	if err := u.leadRepo.SetViewed(ctx, id, viewed); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Lead no encontrado")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

// SetMatchContacted flags a single match as contacted.
func (u *LeadUsecase) SetMatchContacted(ctx context.Context, matchID uuid.UUID, contacted bool) error {
	if err := u.leadRepo.SetMatchContacted(ctx, matchID, contacted); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Match no encontrado")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

// DeleteLead removes a lead and its matches.
func (u *LeadUsecase) DeleteLead(ctx context.Context, id uuid.UUID) error {
	if err := u.leadRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Lead no encontrado")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

// Stats returns the dashboard counters.
func (u *LeadUsecase) Stats(ctx context.Context) (*entities.LeadStats, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats, err := u.leadRepo.Stats(ctx, startOfMonth)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return stats, nil
}
