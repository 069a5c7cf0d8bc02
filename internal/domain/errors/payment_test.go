package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentErrorConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *PaymentError
		code      string
		typ       ErrorType
		retryable bool
		httpCode  int
	}{
		{"card declined", ErrCardDeclined(), "CARD_DECLINED", TypeCard, true, http.StatusBadRequest},
		{"insufficient funds", ErrInsufficientFunds(), "INSUFFICIENT_FUNDS", TypeCard, true, http.StatusBadRequest},
		{"connection", ErrConnection(), "CONNECTION_ERROR", TypeNetwork, true, http.StatusServiceUnavailable},
		{"api", ErrAPI(), "API_ERROR", TypeAPI, true, http.StatusBadGateway},
		{"auth", ErrAuth(), "AUTH_ERROR", TypeAPI, false, http.StatusUnauthorized},
		{"rate limit", ErrRateLimit(), "RATE_LIMIT", TypeAPI, true, http.StatusTooManyRequests},
		{"unknown", ErrUnknown(), "UNKNOWN_ERROR", TypeUnknown, true, http.StatusInternalServerError},
		{"max retries", ErrMaxRetriesExceeded(), "MAX_RETRIES_EXCEEDED", TypeValidation, false, http.StatusTooManyRequests},
		{"not configured", ErrStripeNotConfigured(), "STRIPE_NOT_CONFIGURED", TypeAPI, false, http.StatusInternalServerError},
		{"amount", ErrInvalidAmount("AMOUNT_BELOW_MINIMUM"), "AMOUNT_BELOW_MINIMUM", TypeValidation, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.httpCode, tt.err.HTTPCode)
			assert.NotEqual(t, tt.code, tt.err.Message)
		})
	}
}

func TestPaymentErrorSuggestionsAreOrdered(t *testing.T) {
	err := ErrCardDeclined()

	assert.Equal(t, []string{
		"Kiểm tra số dư tài khoản",
		"Liên hệ ngân hàng để kích hoạt thẻ",
		"Thử sử dụng thẻ khác",
	}, err.Suggestions)
}

func TestPaymentErrorLocalize(t *testing.T) {
	localized := ErrInsufficientFunds().Localize("en")

	assert.Equal(t, "insufficient funds", localized.Message)
	assert.Equal(t, "Top up your account", localized.Suggestions[0])
	assert.True(t, localized.Retryable)
}

func TestPaymentErrorWithDetailSurvivesLocalize(t *testing.T) {
	err := ErrUnknown().WithDetail("processor exploded")

	localized := err.Localize("en")

	assert.Equal(t, "processor exploded", localized.Message)
	assert.Equal(t, "Try again or contact support", localized.Suggestions[0])
}

func TestPaymentErrorWithEmptyDetailKeepsCatalogMessage(t *testing.T) {
	err := ErrCard().WithDetail("")

	assert.Equal(t, "Có lỗi với thẻ của bạn", err.Message)
}

func TestPaymentErrorMessage(t *testing.T) {
	assert.Equal(t, "RATE_LIMIT (api_error): Quá nhiều yêu cầu, vui lòng thử lại sau", ErrRateLimit().Error())
}
