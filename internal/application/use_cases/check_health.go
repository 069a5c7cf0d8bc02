package use_cases

import (
	"context"
	"log/slog"
	"time"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

const healthProbeTimeout = 3 * time.Second

type StripeCheck struct {
	Configured               bool   `json:"configured"`
	PublishableKeyConfigured bool   `json:"publishableKeyConfigured"`
	WebhookSecretConfigured  bool   `json:"webhookSecretConfigured"`
	Connection               bool   `json:"connection"`
	Error                    string `json:"error,omitempty"`
}

type DatabaseCheck struct {
	Connection bool   `json:"connection"`
	Error      string `json:"error,omitempty"`
}

type HealthReport struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Checks    struct {
		Stripe   StripeCheck   `json:"stripe"`
		Database DatabaseCheck `json:"database"`
	} `json:"checks"`
}

type CheckHealthUseCase struct {
	gateway                  domain.IntentGateway
	verifier                 domain.WebhookVerifier
	orders                   domain.OrderRepository
	publishableKeyConfigured bool
	logger                   *slog.Logger
	now                      func() time.Time
}

func NewCheckHealthUseCase(
	gateway domain.IntentGateway,
	verifier domain.WebhookVerifier,
	orders domain.OrderRepository,
	publishableKeyConfigured bool,
	logger *slog.Logger,
) *CheckHealthUseCase {
	return &CheckHealthUseCase{
		gateway:                  gateway,
		verifier:                 verifier,
		orders:                   orders,
		publishableKeyConfigured: publishableKeyConfigured,
		logger:                   logger,
		now:                      time.Now,
	}
}

// Execute probes the processor and the order store. A store outage makes
// the service unhealthy; a processor problem only degrades card payments.
func (uc *CheckHealthUseCase) Execute(ctx context.Context) *HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	report := &HealthReport{Timestamp: uc.now().UTC()}

	stripe := &report.Checks.Stripe
	stripe.Configured = uc.gateway.Configured()
	stripe.PublishableKeyConfigured = uc.publishableKeyConfigured
	stripe.WebhookSecretConfigured = uc.verifier.Configured()
	if stripe.Configured {
		if err := uc.gateway.Ping(ctx); err != nil {
			stripe.Error = err.Error()
			uc.logger.WarnContext(ctx, "stripe health probe failed", "error", err.Error())
		} else {
			stripe.Connection = true
		}
	} else {
		stripe.Error = "stripe secret key is not configured"
	}

	db := &report.Checks.Database
	if err := uc.orders.Ping(ctx); err != nil {
		db.Error = err.Error()
		uc.logger.ErrorContext(ctx, "order store health probe failed", "error", err.Error())
	} else {
		db.Connection = true
	}

	switch {
	case !db.Connection:
		report.Status = HealthUnhealthy
	case !stripe.Connection || !stripe.WebhookSecretConfigured:
		report.Status = HealthDegraded
	default:
		report.Status = HealthHealthy
	}
	return report
}
