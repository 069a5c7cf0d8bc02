package stripeapi

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/classifier"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

type ConfirmAPI interface {
	Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}

// Confirmer confirms an intent from the buyer's side using the publishable
// key and the intent's client secret. Card data reaches it only as a
// tokenized payment method id.
type Confirmer struct {
	publishableKey string
	api            ConfirmAPI
	logger         *slog.Logger
}

func NewConfirmer(publishableKey string, logger *slog.Logger) *Confirmer {
	c := &Confirmer{publishableKey: publishableKey, logger: logger}
	if c.keyValid() {
		c.api = client.New(publishableKey, nil).PaymentIntents
	}
	return c
}

func NewConfirmerWith(publishableKey string, api ConfirmAPI, logger *slog.Logger) *Confirmer {
	return &Confirmer{publishableKey: publishableKey, api: api, logger: logger}
}

func (c *Confirmer) keyValid() bool {
	return strings.HasPrefix(c.publishableKey, "pk_")
}

// Loaded reports whether the confirmer can talk to the processor.
func (c *Confirmer) Loaded() bool {
	return c.keyValid() && c.api != nil
}

func (c *Confirmer) Confirm(ctx context.Context, clientSecret string, paymentMethodID string) (*domain.PaymentIntent, error) {
	id := IntentIDFromClientSecret(clientSecret)
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx
	params.AddExtra("client_secret", clientSecret)

	pi, err := c.api.Confirm(id, params)
	if err != nil {
		payErr := classifier.Classify(err)
		c.logger.WarnContext(ctx, "confirm payment intent failed",
			"payment_intent_id", id,
			"code", payErr.Code,
		)
		return nil, payErr
	}

	c.logger.InfoContext(ctx, "payment intent confirmed", "payment_intent_id", pi.ID, "status", pi.Status)
	return toDomainIntent(pi), nil
}
