// Package stripeapi adapts stripe-go to the payment ports.
package stripeapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/classifier"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

const DefaultCurrency = "vnd"

type IntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type BalanceAPI interface {
	Get(params *stripe.BalanceParams) (*stripe.Balance, error)
}

type Gateway struct {
	secretKey string
	intents   IntentAPI
	balance   BalanceAPI
	logger    *slog.Logger
}

func NewGateway(secretKey string, logger *slog.Logger) *Gateway {
	g := &Gateway{secretKey: secretKey, logger: logger}
	if g.Configured() {
		api := client.New(secretKey, nil)
		g.intents = api.PaymentIntents
		g.balance = api.Balance
	}
	return g
}

// NewGatewayWith wires the gateway to custom backends such as the
// processor simulator.
func NewGatewayWith(secretKey string, intents IntentAPI, balance BalanceAPI, logger *slog.Logger) *Gateway {
	return &Gateway{secretKey: secretKey, intents: intents, balance: balance, logger: logger}
}

func (g *Gateway) Configured() bool {
	return strings.HasPrefix(g.secretKey, "sk_") && g.intents != nil
}

func (g *Gateway) CreateIntent(ctx context.Context, req domain.IntentRequest) (*domain.IntentResult, error) {
	if !g.Configured() {
		g.logger.ErrorContext(ctx, "stripe is not configured", "key_prefix", Prefix(g.secretKey))
		return nil, apperrors.ErrStripeNotConfigured()
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	amount, err := EncodeAmount(req.Amount, currency)
	if err != nil {
		g.logger.WarnContext(ctx, "intent amount out of range", "amount", req.Amount.String(), "currency", currency)
		return nil, apperrors.ErrInvalidAmount("AMOUNT_TOO_LARGE")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(fmt.Sprintf("NexusKit Order - %s %s", DisplayAmount(req.Amount), strings.ToUpper(currency))),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	params.SetIdempotencyKey(key)

	pi, err := g.intents.New(params)
	if err != nil {
		payErr := classifier.Classify(err)
		g.logger.ErrorContext(ctx, "create payment intent failed",
			"code", payErr.Code,
			"type", payErr.Type,
			"error", err.Error(),
		)
		return nil, payErr
	}

	if pi.ClientSecret == "" {
		g.logger.ErrorContext(ctx, "payment intent has no client secret", "payment_intent_id", pi.ID)
		return nil, apperrors.ErrMissingClientSecret()
	}

	g.logger.InfoContext(ctx, "payment intent created",
		"payment_intent_id", pi.ID,
		"status", pi.Status,
		"amount", pi.Amount,
		"currency", pi.Currency,
		"client_secret", RedactSecret(pi.ClientSecret),
	)

	return &domain.IntentResult{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Amount:          pi.Amount,
		Currency:        string(pi.Currency),
		Status:          domain.IntentStatus(pi.Status),
	}, nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	if !g.Configured() {
		return apperrors.ErrStripeNotConfigured()
	}
	if g.balance == nil {
		return nil
	}
	params := &stripe.BalanceParams{}
	params.Context = ctx
	if _, err := g.balance.Get(params); err != nil {
		return classifier.Classify(err)
	}
	return nil
}

func toDomainIntent(pi *stripe.PaymentIntent) *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       domain.IntentStatus(pi.Status),
		ClientSecret: pi.ClientSecret,
		Metadata:     pi.Metadata,
	}
}
