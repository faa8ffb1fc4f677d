package usecases

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"time"

	"go.uber.org/zap"

	"franquicias-latam.backend/internal/config"
	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/repositories"
	"franquicias-latam.backend/pkg/crypto"
	"franquicias-latam.backend/pkg/logger"
	"franquicias-latam.backend/pkg/utils"
)

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// SmsSender dispatches a verification code to a phone number.
type SmsSender interface {
	Send(ctx context.Context, phone, code string) error
}

// OtpUsecase manages the one-time-code lifecycle per phone number:
// issuance with cooldown and hourly throttling, attempt-capped
// verification and verified-status lookups.
type OtpUsecase struct {
	otpRepo repositories.OtpRepository
	sender  SmsSender
	policy  config.OtpConfig
	// rate limiting is disabled outside production-like environments
	production bool
	now        func() time.Time
}

// NewOtpUsecase creates a new OTP usecase
func NewOtpUsecase(otpRepo repositories.OtpRepository, sender SmsSender, policy config.OtpConfig, production bool) *OtpUsecase {
	return &OtpUsecase{
		otpRepo:    otpRepo,
		sender:     sender,
		policy:     policy,
		production: production,
		now:        time.Now,
	}
}

// ValidPhone reports whether phone matches the accepted format.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Issue generates and dispatches a fresh code for phone. Prior unverified
// codes for the phone are discarded so only one code is ever live.
func (u *OtpUsecase) Issue(ctx context.Context, phone string) error {
	if !ValidPhone(phone) {
		return domainerrors.BadRequest("Numero de telefono invalido")
	}

	now := u.now()

	if u.production {
		count, err := u.otpRepo.CountSince(ctx, phone, now.Add(-u.policy.RateWindow))
		if err != nil {
			return domainerrors.InternalError(err)
		}
		if count >= int64(u.policy.MaxPerWindow) {
			return domainerrors.RateLimited("Demasiados intentos. Intenta en 1 hora.")
		}
	}

	lastAt, err := u.otpRepo.LatestCreatedAt(ctx, phone)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.InternalError(err)
	}
	if err == nil && now.Sub(lastAt) < u.policy.ResendCooldown {
		return domainerrors.TooSoon("Espera unos segundos antes de solicitar otro codigo")
	}

	// Housekeeping: drop expired unverified rows globally, then the
	// phone's own stale codes so at most one stays active.
	if err := u.otpRepo.DeleteExpiredUnverified(ctx, now); err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.otpRepo.DeleteUnverified(ctx, phone); err != nil {
		return domainerrors.InternalError(err)
	}

	code, err := crypto.GenerateOTPCode()
	if err != nil {
		return domainerrors.InternalError(err)
	}
	verification := &entities.OtpVerification{
		ID:        utils.GenerateUUIDv7(),
		Phone:     phone,
		Code:      code,
		Channel:   "sms",
		ExpiresAt: now.Add(u.policy.CodeTTL),
	}
	if err := u.otpRepo.Create(ctx, verification); err != nil {
		return domainerrors.InternalError(err)
	}

	if err := u.sender.Send(ctx, phone, verification.Code); err != nil {
		// The row stays but no success response is returned, so the
		// caller cannot rely on a code it never received.
		logger.Error(ctx, "otp dispatch failed", zap.Error(err))
		return domainerrors.ExternalSendFailure("No se pudo enviar el SMS")
	}

	return nil
}

// Verify checks code against the phone's active verification. Mismatches
// consume an attempt; once attempts reach the cap the row is permanently
// rejected even for the correct code.
func (u *OtpUsecase) Verify(ctx context.Context, phone, code string) error {
	if !ValidPhone(phone) {
		return domainerrors.BadRequest("Numero de telefono invalido")
	}

	row, err := u.otpRepo.LatestActive(ctx, phone, u.now())
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.InvalidOrExpired("Codigo invalido o expirado")
		}
		return domainerrors.InternalError(err)
	}

	if row.Attempts >= u.policy.MaxAttempts {
		return domainerrors.InvalidOrExpired("Codigo invalido o expirado")
	}

	if subtle.ConstantTimeCompare([]byte(row.Code), []byte(code)) != 1 {
		if err := u.otpRepo.IncrementAttempts(ctx, row.ID); err != nil {
			return domainerrors.InternalError(err)
		}
		return domainerrors.InvalidOrExpired("Codigo invalido o expirado")
	}

	// MarkVerified only flips still-unverified rows, so a concurrent
	// duplicate verify loses and gets InvalidOrExpired.
	if err := u.otpRepo.MarkVerified(ctx, row.ID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.InvalidOrExpired("Codigo invalido o expirado")
		}
		return domainerrors.InternalError(err)
	}

	return nil
}

// IsPhoneVerified reports whether phone holds a live verified code. The
// lead intake path gates on this.
func (u *OtpUsecase) IsPhoneVerified(ctx context.Context, phone string) (bool, error) {
	return u.otpRepo.HasVerified(ctx, phone, u.now())
}
