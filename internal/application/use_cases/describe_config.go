package use_cases

import (
	"github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/stripeapi"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/config"
)

// ConfigReport exposes which payment settings are present. Key values are
// never included beyond their 3-character prefix.
type ConfigReport struct {
	Configured               bool   `json:"configured"`
	SecretKeyConfigured      bool   `json:"secretKeyConfigured"`
	PublishableKeyConfigured bool   `json:"publishableKeyConfigured"`
	WebhookSecretConfigured  bool   `json:"webhookSecretConfigured"`
	MockMode                 bool   `json:"mockMode"`
	SecretKeyPrefix          string `json:"secretKeyPrefix"`
	PublishableKeyPrefix     string `json:"publishableKeyPrefix"`
	OrderStore               string `json:"orderStore"`
	MaxRetries               int    `json:"maxRetries"`
}

type DescribeConfigUseCase struct {
	cfg *config.Config
}

func NewDescribeConfigUseCase(cfg *config.Config) *DescribeConfigUseCase {
	return &DescribeConfigUseCase{cfg: cfg}
}

func (uc *DescribeConfigUseCase) Execute() *ConfigReport {
	return &ConfigReport{
		Configured:               uc.cfg.StripeConfigured(),
		SecretKeyConfigured:      uc.cfg.StripeSecretKey != "",
		PublishableKeyConfigured: uc.cfg.StripePublishableKey != "",
		WebhookSecretConfigured:  uc.cfg.StripeWebhookSecret != "",
		MockMode:                 uc.cfg.StripeMockMode,
		SecretKeyPrefix:          stripeapi.Prefix(uc.cfg.StripeSecretKey),
		PublishableKeyPrefix:     stripeapi.Prefix(uc.cfg.StripePublishableKey),
		OrderStore:               uc.cfg.OrderStore,
		MaxRetries:               uc.cfg.PaymentMaxRetries,
	}
}
