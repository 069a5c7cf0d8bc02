// Package processor provides an in-process stand-in for the card
// processor, selected with STRIPE_MOCK_MODE.
package processor

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v74"
)

// Simulator answers the subset of the PaymentIntents and Balance APIs the
// service uses. Outcomes are driven by the processor's test payment
// method ids.
type Simulator struct {
	mu      sync.Mutex
	intents map[string]*stripe.PaymentIntent
	byKey   map[string]string
	latency time.Duration
}

func NewSimulator(latency time.Duration) *Simulator {
	return &Simulator{
		intents: make(map[string]*stripe.PaymentIntent),
		byKey:   make(map[string]string),
		latency: latency,
	}
}

func (s *Simulator) delay() {
	if s.latency <= 0 {
		return
	}
	jitter, _ := rand.Int(rand.Reader, big.NewInt(int64(s.latency)))
	time.Sleep(s.latency/2 + time.Duration(jitter.Int64())/2)
}

func (s *Simulator) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.delay()

	if params.Amount == nil || *params.Amount <= 0 {
		return nil, &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Code:           stripe.ErrorCodeParameterInvalidInteger,
			Msg:            "amount must be a positive integer",
			HTTPStatusCode: http.StatusBadRequest,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if params.IdempotencyKey != nil {
		if id, ok := s.byKey[*params.IdempotencyKey]; ok {
			return clone(s.intents[id]), nil
		}
	}

	id := "pi_sim_" + randomHex(12)
	pi := &stripe.PaymentIntent{
		ID:           id,
		Object:       "payment_intent",
		Amount:       *params.Amount,
		Currency:     stripe.Currency(stripe.StringValue(params.Currency)),
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		ClientSecret: id + "_secret_" + randomHex(12),
		Description:  stripe.StringValue(params.Description),
		Metadata:     copyMetadata(params.Metadata),
		Created:      time.Now().Unix(),
	}
	s.intents[id] = pi
	if params.IdempotencyKey != nil {
		s.byKey[*params.IdempotencyKey] = id
	}
	return clone(pi), nil
}

func (s *Simulator) Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	s.delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	pi, ok := s.intents[id]
	if !ok {
		return nil, &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Code:           stripe.ErrorCodeResourceMissing,
			Msg:            "no such payment_intent: " + id,
			HTTPStatusCode: http.StatusNotFound,
		}
	}
	if params.Extra != nil && params.Extra.Has("client_secret") && params.Extra.Get("client_secret") != pi.ClientSecret {
		return nil, &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			Msg:            "client_secret does not match payment intent",
			HTTPStatusCode: http.StatusBadRequest,
		}
	}

	status, failure := resolveOutcome(stripe.StringValue(params.PaymentMethod))
	if failure != nil {
		failure.PaymentIntent = clone(pi)
		return nil, failure
	}
	pi.Status = status
	return clone(pi), nil
}

func (s *Simulator) Get(_ *stripe.BalanceParams) (*stripe.Balance, error) {
	return &stripe.Balance{Object: "balance", Livemode: false}, nil
}

func resolveOutcome(paymentMethod string) (stripe.PaymentIntentStatus, *stripe.Error) {
	switch paymentMethod {
	case "pm_card_chargeDeclined":
		return "", cardError(stripe.ErrorCodeCardDeclined, "generic_decline")
	case "pm_card_chargeDeclinedInsufficientFunds":
		return "", cardError(stripe.ErrorCodeCardDeclined, "insufficient_funds")
	case "pm_card_chargeDeclinedExpiredCard":
		return "", cardError(stripe.ErrorCodeExpiredCard, "expired_card")
	case "pm_card_chargeDeclinedIncorrectCvc":
		return "", cardError(stripe.ErrorCodeIncorrectCVC, "incorrect_cvc")
	case "pm_card_chargeDeclinedProcessingError":
		return "", cardError(stripe.ErrorCodeProcessingError, "processing_error")
	case "pm_card_authenticationRequired":
		return stripe.PaymentIntentStatusRequiresAction, nil
	case "pm_card_processing":
		return stripe.PaymentIntentStatusProcessing, nil
	default:
		return stripe.PaymentIntentStatusSucceeded, nil
	}
}

func cardError(code stripe.ErrorCode, decline string) *stripe.Error {
	return &stripe.Error{
		Type:           stripe.ErrorTypeCard,
		Code:           code,
		DeclineCode:    stripe.DeclineCode(decline),
		Msg:            "Your card was declined.",
		HTTPStatusCode: http.StatusPaymentRequired,
	}
}

func clone(pi *stripe.PaymentIntent) *stripe.PaymentIntent {
	out := *pi
	out.Metadata = copyMetadata(pi.Metadata)
	return &out
}

func copyMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
