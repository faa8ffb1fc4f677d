// Package sms implements the outbound SMS capability behind the
// usecases.SmsSender interface.
package sms

import (
	"context"
	"fmt"

	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"franquicias-latam.backend/internal/config"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/pkg/logger"
)

// TwilioSender dispatches one-time codes through the Twilio Messages API
type TwilioSender struct {
	client    *twilio.RestClient
	fromPhone string
}

// NewTwilioSender creates a sender from Twilio credentials
func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{client: client, fromPhone: cfg.FromPhone}
}

// Send sends the verification code to phone
func (s *TwilioSender) Send(ctx context.Context, phone, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.fromPhone)
	params.SetBody(fmt.Sprintf("Tu codigo de verificacion de Franquicias LATAM es %s", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		logger.Warn(ctx, "twilio sms send failed", zap.Error(err))
		return fmt.Errorf("%w: %v", domainerrors.ErrSendFailure, err)
	}
	return nil
}

// DevSender is the non-production fallback when Twilio credentials are
// absent: the code stays usable from the store, nothing is dispatched.
type DevSender struct{}

// Send logs the code instead of dispatching it
func (DevSender) Send(ctx context.Context, phone, code string) error {
	logger.Debug(ctx, "sms provider not configured, code not dispatched",
		zap.String("phone", maskPhone(phone)),
	)
	return nil
}

// maskPhone keeps only the last four digits for log output.
func maskPhone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return "***"
	}
	return "***" + string(digits[len(digits)-4:])
}

// UnconfiguredSender is used in production when no provider credentials
// exist: every issuance fails instead of silently trusting stored codes.
type UnconfiguredSender struct{}

// Send always fails
func (UnconfiguredSender) Send(ctx context.Context, phone, code string) error {
	return domainerrors.ErrSmsNotConfigured
}
