package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"

	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

func TestClassifyStripeErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       *stripe.Error
		code      string
		typ       apperrors.ErrorType
		retryable bool
	}{
		{
			name:      "card declined",
			err:       &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeCardDeclined, HTTPStatusCode: http.StatusPaymentRequired},
			code:      "CARD_DECLINED",
			typ:       apperrors.TypeCard,
			retryable: true,
		},
		{
			name:      "insufficient funds via decline code",
			err:       &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeCardDeclined, DeclineCode: "insufficient_funds"},
			code:      "INSUFFICIENT_FUNDS",
			typ:       apperrors.TypeCard,
			retryable: true,
		},
		{
			name:      "expired card",
			err:       &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeExpiredCard},
			code:      "EXPIRED_CARD",
			typ:       apperrors.TypeCard,
			retryable: true,
		},
		{
			name:      "incorrect cvc",
			err:       &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeIncorrectCVC},
			code:      "INCORRECT_CVC",
			typ:       apperrors.TypeCard,
			retryable: true,
		},
		{
			name:      "processing error",
			err:       &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeProcessingError},
			code:      "PROCESSING_ERROR",
			typ:       apperrors.TypeCard,
			retryable: true,
		},
		{
			name:      "other card error",
			err:       &stripe.Error{Type: stripe.ErrorTypeCard, Code: "card_velocity_exceeded", Msg: "too many attempts"},
			code:      "CARD_ERROR",
			typ:       apperrors.TypeCard,
			retryable: true,
		},
		{
			name:      "invalid request",
			err:       &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, HTTPStatusCode: http.StatusBadRequest},
			code:      "VALIDATION_ERROR",
			typ:       apperrors.TypeValidation,
			retryable: true,
		},
		{
			name:      "api error",
			err:       &stripe.Error{Type: stripe.ErrorTypeAPI, HTTPStatusCode: http.StatusInternalServerError},
			code:      "API_ERROR",
			typ:       apperrors.TypeAPI,
			retryable: true,
		},
		{
			name:      "authentication by status",
			err:       &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, HTTPStatusCode: http.StatusUnauthorized},
			code:      "AUTH_ERROR",
			typ:       apperrors.TypeAPI,
			retryable: false,
		},
		{
			name:      "rate limit by status",
			err:       &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, HTTPStatusCode: http.StatusTooManyRequests},
			code:      "RATE_LIMIT",
			typ:       apperrors.TypeAPI,
			retryable: true,
		},
		{
			name:      "idempotency",
			err:       &stripe.Error{Type: stripe.ErrorTypeIdempotency},
			code:      "IDEMPOTENCY_ERROR",
			typ:       apperrors.TypeAPI,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)

			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.typ, got.Type)
			assert.Equal(t, tt.retryable, got.Retryable)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestClassifyProviderErrorTypes(t *testing.T) {
	tests := []struct {
		typ       string
		code      string
		retryable bool
	}{
		{"validation_error", "VALIDATION_ERROR", true},
		{"api_connection_error", "CONNECTION_ERROR", true},
		{"api_error", "API_ERROR", true},
		{"authentication_error", "AUTH_ERROR", false},
		{"rate_limit_error", "RATE_LIMIT", true},
		{"something_new", "UNKNOWN_ERROR", true},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got := Classify(&ProviderError{Type: tt.typ})

			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.retryable, got.Retryable)
		})
	}
}

func TestClassifyCardSuggestions(t *testing.T) {
	got := Classify(&ProviderError{Type: "card_error", Code: "card_declined"})

	assert.Equal(t, []string{
		"Kiểm tra số dư tài khoản",
		"Liên hệ ngân hàng để kích hoạt thẻ",
		"Thử sử dụng thẻ khác",
	}, got.Suggestions)
}

func TestClassifyUnknownUsesProviderMessage(t *testing.T) {
	got := Classify(&ProviderError{Type: "weird", Message: "boom"})

	assert.Equal(t, "UNKNOWN_ERROR", got.Code)
	assert.Equal(t, "boom", got.Message)
}

func TestClassifyNetworkFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"url error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("connection refused")}},
		{"deadline", context.DeadlineExceeded},
		{"wrapped deadline", fmt.Errorf("create intent: %w", context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)

			assert.Equal(t, "CONNECTION_ERROR", got.Code)
			assert.Equal(t, apperrors.TypeNetwork, got.Type)
			assert.True(t, got.Retryable)
		})
	}
}

func TestClassifyPassesThroughPaymentError(t *testing.T) {
	original := apperrors.ErrMaxRetriesExceeded()

	got := Classify(fmt.Errorf("retry: %w", original))

	assert.Same(t, original, got)
}

func TestClassifyUnrecognizedError(t *testing.T) {
	got := Classify(errors.New("something odd"))

	assert.Equal(t, "UNKNOWN_ERROR", got.Code)
	assert.Equal(t, apperrors.TypeUnknown, got.Type)
	assert.True(t, got.Retryable)
	assert.Equal(t, "something odd", got.Message)
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassifyIsTotal(t *testing.T) {
	inputs := []error{
		&stripe.Error{},
		&ProviderError{},
		errors.New(""),
		&url.Error{},
		context.Canceled,
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := Classify(in)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.Code)
		})
	}
}
