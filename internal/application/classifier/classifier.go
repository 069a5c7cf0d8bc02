// Package classifier maps any failure seen on the payment path to a
// user-facing PaymentError.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/stripe/stripe-go/v74"

	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

// ProviderError is a processor error that arrived as a plain
// type/code/message triple, e.g. decoded from an HTTP error body.
type ProviderError struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	DeclineCode string `json:"decline_code,omitempty"`
	Message     string `json:"message"`
	Status      int    `json:"-"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Type, e.Code, e.Message)
}

// Classify never fails. A nil error yields nil.
func Classify(err error) *apperrors.PaymentError {
	if err == nil {
		return nil
	}

	var payErr *apperrors.PaymentError
	if errors.As(err, &payErr) {
		return payErr
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fromProvider(&ProviderError{
			Type:        string(stripeErr.Type),
			Code:        string(stripeErr.Code),
			DeclineCode: string(stripeErr.DeclineCode),
			Message:     stripeErr.Msg,
			Status:      stripeErr.HTTPStatusCode,
		})
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return fromProvider(provErr)
	}

	if isNetwork(err) {
		return apperrors.ErrConnection()
	}

	return apperrors.ErrUnknown().WithDetail(err.Error())
}

func isNetwork(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func fromProvider(e *ProviderError) *apperrors.PaymentError {
	switch e.Status {
	case http.StatusUnauthorized:
		return apperrors.ErrAuth()
	case http.StatusTooManyRequests:
		return apperrors.ErrRateLimit()
	}

	switch e.Type {
	case "card_error":
		return fromCard(e)
	case "validation_error", "invalid_request_error":
		return apperrors.ErrValidation()
	case "api_connection_error":
		return apperrors.ErrConnection()
	case "api_error":
		return apperrors.ErrAPI()
	case "authentication_error":
		return apperrors.ErrAuth()
	case "rate_limit_error":
		return apperrors.ErrRateLimit()
	case "idempotency_error":
		return apperrors.ErrIdempotency()
	default:
		return apperrors.ErrUnknown().WithDetail(e.Message)
	}
}

var specificCardErrors = map[string]func() *apperrors.PaymentError{
	"insufficient_funds": apperrors.ErrInsufficientFunds,
	"expired_card":       apperrors.ErrExpiredCard,
	"incorrect_cvc":      apperrors.ErrIncorrectCVC,
	"processing_error":   apperrors.ErrProcessing,
}

// fromCard prefers the decline code, which the processor uses to refine
// a generic card_declined.
func fromCard(e *ProviderError) *apperrors.PaymentError {
	if build, ok := specificCardErrors[e.DeclineCode]; ok {
		return build()
	}
	if build, ok := specificCardErrors[e.Code]; ok {
		return build()
	}
	if e.Code == "card_declined" {
		return apperrors.ErrCardDeclined()
	}
	return apperrors.ErrCard().WithDetail(e.Message)
}
