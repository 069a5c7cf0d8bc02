package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
)

func newIntent(t *testing.T, s *Simulator, key string) *stripe.PaymentIntent {
	t.Helper()
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(500000),
		Currency: stripe.String("vnd"),
	}
	params.AddMetadata("correlationId", "chk_1")
	if key != "" {
		params.SetIdempotencyKey(key)
	}
	pi, err := s.New(params)
	require.NoError(t, err)
	return pi
}

func confirm(s *Simulator, pi *stripe.PaymentIntent, pm string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentConfirmParams{PaymentMethod: stripe.String(pm)}
	params.AddExtra("client_secret", pi.ClientSecret)
	return s.Confirm(pi.ID, params)
}

func TestNew_CreatesIntent(t *testing.T) {
	s := NewSimulator(0)

	pi := newIntent(t, s, "")

	assert.Contains(t, pi.ID, "pi_sim_")
	assert.Contains(t, pi.ClientSecret, pi.ID+"_secret_")
	assert.Equal(t, int64(500000), pi.Amount)
	assert.Equal(t, stripe.Currency("vnd"), pi.Currency)
	assert.Equal(t, stripe.PaymentIntentStatusRequiresPaymentMethod, pi.Status)
	assert.Equal(t, "chk_1", pi.Metadata["correlationId"])
}

func TestNew_IdempotencyKeyReturnsSameIntent(t *testing.T) {
	s := NewSimulator(0)

	first := newIntent(t, s, "key-1")
	second := newIntent(t, s, "key-1")
	third := newIntent(t, s, "key-2")

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestNew_RejectsNonPositiveAmount(t *testing.T) {
	s := NewSimulator(0)

	_, err := s.New(&stripe.PaymentIntentParams{Amount: stripe.Int64(0), Currency: stripe.String("vnd")})

	var stripeErr *stripe.Error
	require.ErrorAs(t, err, &stripeErr)
	assert.Equal(t, stripe.ErrorTypeInvalidRequest, stripeErr.Type)
}

func TestConfirm_PaymentMethodOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		pm          string
		wantStatus  stripe.PaymentIntentStatus
		wantCode    stripe.ErrorCode
		wantDecline stripe.DeclineCode
	}{
		{name: "visa succeeds", pm: "pm_card_visa", wantStatus: stripe.PaymentIntentStatusSucceeded},
		{name: "generic decline", pm: "pm_card_chargeDeclined", wantCode: stripe.ErrorCodeCardDeclined, wantDecline: "generic_decline"},
		{name: "insufficient funds", pm: "pm_card_chargeDeclinedInsufficientFunds", wantCode: stripe.ErrorCodeCardDeclined, wantDecline: "insufficient_funds"},
		{name: "expired card", pm: "pm_card_chargeDeclinedExpiredCard", wantCode: stripe.ErrorCodeExpiredCard, wantDecline: "expired_card"},
		{name: "incorrect cvc", pm: "pm_card_chargeDeclinedIncorrectCvc", wantCode: stripe.ErrorCodeIncorrectCVC, wantDecline: "incorrect_cvc"},
		{name: "processing error", pm: "pm_card_chargeDeclinedProcessingError", wantCode: stripe.ErrorCodeProcessingError, wantDecline: "processing_error"},
		{name: "3ds required", pm: "pm_card_authenticationRequired", wantStatus: stripe.PaymentIntentStatusRequiresAction},
		{name: "processing", pm: "pm_card_processing", wantStatus: stripe.PaymentIntentStatusProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimulator(0)
			pi := newIntent(t, s, "")

			got, err := confirm(s, pi, tt.pm)

			if tt.wantCode != "" {
				var stripeErr *stripe.Error
				require.ErrorAs(t, err, &stripeErr)
				assert.Equal(t, stripe.ErrorTypeCard, stripeErr.Type)
				assert.Equal(t, tt.wantCode, stripeErr.Code)
				assert.Equal(t, tt.wantDecline, stripeErr.DeclineCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestConfirm_UnknownIntent(t *testing.T) {
	s := NewSimulator(0)

	_, err := s.Confirm("pi_missing", &stripe.PaymentIntentConfirmParams{PaymentMethod: stripe.String("pm_card_visa")})

	var stripeErr *stripe.Error
	require.ErrorAs(t, err, &stripeErr)
	assert.Equal(t, stripe.ErrorCodeResourceMissing, stripeErr.Code)
}

func TestConfirm_WrongClientSecret(t *testing.T) {
	s := NewSimulator(0)
	pi := newIntent(t, s, "")
	params := &stripe.PaymentIntentConfirmParams{PaymentMethod: stripe.String("pm_card_visa")}
	params.AddExtra("client_secret", "pi_other_secret_x")

	_, err := s.Confirm(pi.ID, params)

	assert.Error(t, err)
}

func TestGet_ReturnsBalance(t *testing.T) {
	b, err := NewSimulator(0).Get(&stripe.BalanceParams{})

	require.NoError(t, err)
	assert.Equal(t, "balance", b.Object)
}
