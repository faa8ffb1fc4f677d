// Package notify implements the best-effort lead-created notification
// behind the usecases.LeadNotifier interface.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"franquicias-latam.backend/internal/config"
	"franquicias-latam.backend/internal/usecases"
	"franquicias-latam.backend/pkg/logger"
)

// maxPerWindow bounds notification emails per throttle window. The counter
// is process-local by design; it is a cost guard, not a cluster-wide limit.
const (
	maxPerWindow   = 30
	throttleWindow = time.Hour
)

// SendGridNotifier emails the admin inbox when a lead is created or
// updated. Failures are logged, never propagated.
type SendGridNotifier struct {
	client     *sendgrid.Client
	adminEmail string
	fromEmail  string

	mu          sync.Mutex
	windowStart time.Time
	sentInWin   int
	now         func() time.Time
}

// NewSendGridNotifier creates a notifier from SendGrid settings
func NewSendGridNotifier(cfg config.SendGridConfig) *SendGridNotifier {
	return &SendGridNotifier{
		client:     sendgrid.NewSendClient(cfg.APIKey),
		adminEmail: cfg.AdminEmail,
		fromEmail:  cfg.FromEmail,
		now:        time.Now,
	}
}

// NotifyLeadCreated sends the admin summary email, best effort
func (n *SendGridNotifier) NotifyLeadCreated(ctx context.Context, summary usecases.LeadSummary) {
	if !n.allow() {
		logger.Warn(ctx, "lead notification throttled", zap.String("email", summary.Email))
		return
	}

	from := mail.NewEmail("Franquicias LATAM", n.fromEmail)
	to := mail.NewEmail("Admin", n.adminEmail)
	subject := fmt.Sprintf("Nuevo lead: %s", summary.Name)
	body := fmt.Sprintf(
		"Nombre: %s\nEmail: %s\nTelefono: %s\nPais: %s\nInversion: %s\nMatches: %d\n",
		summary.Name, summary.Email, summary.Phone, summary.Country, summary.InvestmentRange, summary.MatchCount,
	)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := n.client.Send(message)
	if err != nil {
		logger.Warn(ctx, "lead notification send failed", zap.Error(err))
		return
	}
	if resp.StatusCode >= 400 {
		logger.Warn(ctx, "lead notification rejected",
			zap.Int("status", resp.StatusCode),
		)
	}
}

// allow consumes one slot from the throttle window.
func (n *SendGridNotifier) allow() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	if now.Sub(n.windowStart) >= throttleWindow {
		n.windowStart = now
		n.sentInWin = 0
	}
	if n.sentInWin >= maxPerWindow {
		return false
	}
	n.sentInWin++
	return true
}

// NopNotifier is used when no SendGrid key is configured.
type NopNotifier struct{}

// NotifyLeadCreated logs the summary and drops it
func (NopNotifier) NotifyLeadCreated(ctx context.Context, summary usecases.LeadSummary) {
	logger.Debug(ctx, "lead notification skipped, sendgrid not configured",
		zap.String("email", summary.Email),
	)
}
