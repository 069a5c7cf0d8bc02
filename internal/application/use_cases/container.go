package use_cases

import (
	"context"
	"log/slog"
	"time"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/retry"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/config"
)

// Dependencies are the adapters the use cases run against. main picks the
// implementations from configuration.
type Dependencies struct {
	Orders   domain.OrderRepository
	Events   domain.WebhookEventRepository
	Tx       domain.TransactionManager
	Gateway  domain.IntentGateway
	Verifier domain.WebhookVerifier
	Retry    *retry.Coordinator
	Logger   *slog.Logger
}

type Container struct {
	CreateIntent   *CreateIntentUseCase
	HandleWebhook  *HandleWebhookUseCase
	PlaceOrder     *PlaceOrderUseCase
	GetOrder       *GetOrderUseCase
	CheckHealth    *CheckHealthUseCase
	RetryPayment   *RetryPaymentUseCase
	DescribeConfig *DescribeConfigUseCase

	deps Dependencies
	cfg  *config.Config
}

func NewContainer(deps Dependencies, cfg *config.Config) *Container {
	if deps.Retry == nil {
		deps.Retry = retry.NewCoordinator(retry.Config{
			MaxRetries: cfg.PaymentMaxRetries,
			BaseDelay:  cfg.PaymentRetryBaseDelay,
			TTL:        cfg.PaymentRetryTTL,
		})
	}

	return &Container{
		CreateIntent:   NewCreateIntentUseCase(deps.Gateway, deps.Logger),
		HandleWebhook:  NewHandleWebhookUseCase(deps.Verifier, deps.Orders, deps.Events, cfg.WebhookEventTTL, deps.Logger),
		PlaceOrder:     NewPlaceOrderUseCase(deps.Orders, deps.Events, deps.Tx, deps.Logger),
		GetOrder:       NewGetOrderUseCase(deps.Orders),
		CheckHealth:    NewCheckHealthUseCase(deps.Gateway, deps.Verifier, deps.Orders, cfg.StripePublishableKey != "", deps.Logger),
		RetryPayment:   NewRetryPaymentUseCase(deps.Retry, deps.Logger),
		DescribeConfig: NewDescribeConfigUseCase(cfg),
		deps:           deps,
		cfg:            cfg,
	}
}

// StartBackground runs the retry janitor and the webhook event retention
// loop until ctx is cancelled.
func (c *Container) StartBackground(ctx context.Context) {
	c.deps.Retry.Start(ctx, 0)
	if c.deps.Events != nil {
		go startCleanupLoop(ctx, c.deps.Events, c.cfg.CleanupInterval, c.deps.Logger)
	}
}

const DefaultCleanupInterval = time.Hour

func startCleanupLoop(ctx context.Context, repo domain.WebhookEventRepository, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		logger.Warn("non-positive cleanup interval, using default", "interval", interval.String(), "default", DefaultCleanupInterval.String())
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleaned, err := repo.DeleteExpired(ctx)
			if err != nil {
				logger.Error("webhook event cleanup failed", "error", err.Error())
				continue
			}
			if cleaned > 0 {
				logger.Info("cleaned expired webhook events", "count", cleaned)
			}
		}
	}
}
