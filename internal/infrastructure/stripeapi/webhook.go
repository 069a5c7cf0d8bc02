package stripeapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
)

type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

func (v *WebhookVerifier) Configured() bool {
	return v.secret != ""
}

// Verify checks the Stripe-Signature header against the raw body and
// decodes the event. Nothing in payload is trusted before this returns.
func (v *WebhookVerifier) Verify(payload []byte, signatureHeader string) (*domain.VerifiedEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	verified := &domain.VerifiedEvent{
		ID:      event.ID,
		Type:    string(event.Type),
		Payload: payload,
	}

	if strings.HasPrefix(verified.Type, "payment_intent.") && event.Data != nil {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}
		verified.Intent = toDomainIntent(&pi)
	}

	return verified, nil
}

// SignPayload builds a Stripe-Signature header for payload. It is used by
// the webhook test tool and in tests.
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
