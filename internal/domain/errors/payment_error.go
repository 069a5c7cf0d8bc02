package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	TypeCard       ErrorType = "card_error"
	TypeValidation ErrorType = "validation_error"
	TypeAPI        ErrorType = "api_error"
	TypeNetwork    ErrorType = "network_error"
	TypeUnknown    ErrorType = "unknown_error"
)

// PaymentError is the classified, user-facing form of every payment
// failure. Raw processor errors never leave the classifier.
type PaymentError struct {
	Code        string    `json:"code"`
	Message     string    `json:"message"`
	Type        ErrorType `json:"type"`
	Retryable   bool      `json:"retryable"`
	Suggestions []string  `json:"suggestions,omitempty"`
	HTTPCode    int       `json:"-"`

	// provider-supplied text that replaces the catalog message
	detail string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Type, e.Message)
}

func NewPaymentError(code string, typ ErrorType, retryable bool, httpCode int) *PaymentError {
	return &PaymentError{
		Code:        code,
		Message:     GetMessage(code, DefaultLanguage),
		Type:        typ,
		Retryable:   retryable,
		Suggestions: GetSuggestions(code, DefaultLanguage),
		HTTPCode:    httpCode,
	}
}

// WithDetail overrides the catalog message with text reported by the
// processor. Empty detail leaves the error unchanged.
func (e *PaymentError) WithDetail(detail string) *PaymentError {
	if detail == "" {
		return e
	}
	out := *e
	out.detail = detail
	out.Message = detail
	return &out
}

func (e *PaymentError) Localize(lang string) *PaymentError {
	out := *e
	if e.detail == "" {
		if msg, ok := lookup(e.Code, lang); ok {
			out.Message = msg
		}
	}
	if s := GetSuggestions(e.Code, lang); s != nil {
		out.Suggestions = s
	}
	return &out
}

func cardError(code string) *PaymentError {
	return NewPaymentError(code, TypeCard, true, http.StatusBadRequest)
}

func ErrCardDeclined() *PaymentError      { return cardError("CARD_DECLINED") }
func ErrInsufficientFunds() *PaymentError { return cardError("INSUFFICIENT_FUNDS") }
func ErrExpiredCard() *PaymentError       { return cardError("EXPIRED_CARD") }
func ErrIncorrectCVC() *PaymentError      { return cardError("INCORRECT_CVC") }
func ErrProcessing() *PaymentError        { return cardError("PROCESSING_ERROR") }
func ErrCard() *PaymentError              { return cardError("CARD_ERROR") }

func ErrValidation() *PaymentError {
	return NewPaymentError("VALIDATION_ERROR", TypeValidation, true, http.StatusBadRequest)
}

func ErrConnection() *PaymentError {
	return NewPaymentError("CONNECTION_ERROR", TypeNetwork, true, http.StatusServiceUnavailable)
}

func ErrNetwork() *PaymentError {
	return NewPaymentError("NETWORK_ERROR", TypeNetwork, true, http.StatusServiceUnavailable)
}

func ErrAPI() *PaymentError {
	return NewPaymentError("API_ERROR", TypeAPI, true, http.StatusBadGateway)
}

func ErrAuth() *PaymentError {
	return NewPaymentError("AUTH_ERROR", TypeAPI, false, http.StatusUnauthorized)
}

func ErrRateLimit() *PaymentError {
	return NewPaymentError("RATE_LIMIT", TypeAPI, true, http.StatusTooManyRequests)
}

func ErrIdempotency() *PaymentError {
	return NewPaymentError("IDEMPOTENCY_ERROR", TypeAPI, true, http.StatusBadRequest)
}

func ErrUnknown() *PaymentError {
	return NewPaymentError("UNKNOWN_ERROR", TypeUnknown, true, http.StatusInternalServerError)
}

func ErrMaxRetriesExceeded() *PaymentError {
	return NewPaymentError("MAX_RETRIES_EXCEEDED", TypeValidation, false, http.StatusTooManyRequests)
}

func ErrStripeNotConfigured() *PaymentError {
	return NewPaymentError("STRIPE_NOT_CONFIGURED", TypeAPI, false, http.StatusInternalServerError)
}

func ErrMissingClientSecret() *PaymentError {
	return NewPaymentError("MISSING_CLIENT_SECRET", TypeAPI, true, http.StatusBadGateway)
}

// ErrInvalidAmount wraps one of the AMOUNT_* validator codes.
func ErrInvalidAmount(code string) *PaymentError {
	return NewPaymentError(code, TypeValidation, false, http.StatusBadRequest)
}

func ErrOffline() *PaymentError {
	return NewPaymentError("OFFLINE", TypeNetwork, false, 0)
}

func ErrStripeNotLoaded() *PaymentError {
	return NewPaymentError("STRIPE_NOT_LOADED", TypeValidation, false, 0)
}

func ErrIncompleteCard() *PaymentError {
	return NewPaymentError("INCOMPLETE_CARD", TypeValidation, false, 0)
}

func ErrRequiresAction() *PaymentError {
	return NewPaymentError("REQUIRES_ACTION", TypeCard, false, 0)
}

func ErrUnexpectedStatus() *PaymentError {
	return NewPaymentError("UNEXPECTED_STATUS", TypeUnknown, false, 0)
}
