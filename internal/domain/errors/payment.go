package errors

import (
	"fmt"
	"net/http"
)

func appErr(code string, httpCode int) *AppError {
	return New(code, httpCode, GetMessage(code, DefaultLanguage))
}

func ErrInvalidRequest(detail string) *AppError {
	e := appErr("INVALID_REQUEST", http.StatusBadRequest)
	if detail != "" {
		e.Message = fmt.Sprintf("%s: %s", e.Message, detail)
	}
	return e
}

func ErrInternal() *AppError {
	return appErr("INTERNAL_ERROR", http.StatusInternalServerError)
}

func ErrOrderNotFound() *AppError {
	return appErr("ORDER_NOT_FOUND", http.StatusNotFound)
}

func ErrOrderAlreadyExists() *AppError {
	return appErr("ORDER_ALREADY_EXISTS", http.StatusConflict)
}

func ErrOrderTotalMismatch() *AppError {
	return appErr("ORDER_TOTAL_MISMATCH", http.StatusBadRequest)
}

func ErrOrderIntentMissing() *AppError {
	return appErr("ORDER_INTENT_MISSING", http.StatusBadRequest)
}

func ErrWebhookSignatureMissing() *AppError {
	return appErr("WEBHOOK_SIGNATURE_MISSING", http.StatusBadRequest)
}

func ErrWebhookNotConfigured() *AppError {
	return appErr("WEBHOOK_NOT_CONFIGURED", http.StatusInternalServerError)
}

func ErrWebhookSignatureInvalid() *AppError {
	return appErr("WEBHOOK_SIGNATURE_INVALID", http.StatusBadRequest)
}

func ErrWebhookProcessingFailed() *AppError {
	return appErr("WEBHOOK_PROCESSING_FAILED", http.StatusInternalServerError)
}
