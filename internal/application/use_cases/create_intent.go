package use_cases

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/validator"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

// Processor metadata limits.
const (
	maxMetadataKeys     = 50
	maxMetadataKeyLen   = 40
	maxMetadataValueLen = 500
)

type CreateIntentInput struct {
	Amount         decimal.Decimal
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
	RequestID      string
}

type CreateIntentOutput struct {
	ClientSecret    string
	PaymentIntentID string
	Amount          decimal.Decimal
	Currency        string
	RequestID       string
}

type CreateIntentUseCase struct {
	gateway domain.IntentGateway
	logger  *slog.Logger
	now     func() time.Time
}

func NewCreateIntentUseCase(gateway domain.IntentGateway, logger *slog.Logger) *CreateIntentUseCase {
	return &CreateIntentUseCase{
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

func (uc *CreateIntentUseCase) Execute(ctx context.Context, in CreateIntentInput) (*CreateIntentOutput, error) {
	if !uc.gateway.Configured() {
		return nil, apperrors.ErrStripeNotConfigured()
	}

	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "vnd"
	}

	if res := validator.ValidateCharge(in.Amount, currency); !res.Valid {
		uc.logger.WarnContext(ctx, "rejected payment amount", "amount", in.Amount.String(), "currency", currency, "code", res.Code)
		return nil, res.PaymentError()
	}

	result, err := uc.gateway.CreateIntent(ctx, domain.IntentRequest{
		Amount:         in.Amount,
		Currency:       currency,
		Metadata:       uc.metadata(in),
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return &CreateIntentOutput{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
		Amount:          in.Amount,
		Currency:        currency,
		RequestID:       in.RequestID,
	}, nil
}

func (uc *CreateIntentUseCase) metadata(in CreateIntentInput) map[string]string {
	out := make(map[string]string, len(in.Metadata)+3)
	for k, v := range in.Metadata {
		if len(out) >= maxMetadataKeys-3 {
			break
		}
		if k == "" || len(k) > maxMetadataKeyLen {
			continue
		}
		if len(v) > maxMetadataValueLen {
			v = v[:maxMetadataValueLen]
		}
		out[k] = v
	}
	out[domain.MetaRequestID] = in.RequestID
	out[domain.MetaOriginalAmount] = in.Amount.String()
	out[domain.MetaCreatedAt] = uc.now().UTC().Format(time.RFC3339)
	return out
}
