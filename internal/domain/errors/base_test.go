package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorImplementsErrorInterface(t *testing.T) {
	var err error = &AppError{Code: "TEST_CODE", Message: "test message", HTTPCode: http.StatusBadRequest}

	assert.NotNil(t, err)
	assert.Implements(t, (*error)(nil), &AppError{})
}

func TestErrorReturnsFormattedString(t *testing.T) {
	appErr := New("TEST_CODE", http.StatusBadRequest, "test message")

	assert.Equal(t, "TEST_CODE: test message", appErr.Error())
}

func TestConstructorsDefaultToVietnamese(t *testing.T) {
	appErr := ErrOrderNotFound()

	assert.Equal(t, "ORDER_NOT_FOUND", appErr.Code)
	assert.Equal(t, "Không tìm thấy đơn hàng", appErr.Message)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestLocalize_ReturnsEnglish(t *testing.T) {
	localized := ErrOrderNotFound().Localize("en")

	assert.Equal(t, "order not found", localized.Message)
	assert.Equal(t, "ORDER_NOT_FOUND", localized.Code)
	assert.Equal(t, http.StatusNotFound, localized.HTTPCode)
}

func TestLocalize_ExtractsBaseLanguageFromLocale(t *testing.T) {
	localized := ErrWebhookSignatureInvalid().Localize("en-US,en;q=0.9")

	assert.Equal(t, "invalid webhook signature", localized.Message)
}

func TestLocalize_FallsBackToVietnameseForUnknownLanguage(t *testing.T) {
	localized := ErrOrderNotFound().Localize("fr")

	assert.Equal(t, "Không tìm thấy đơn hàng", localized.Message)
}

func TestLocalize_KeepsMessageForUnknownCode(t *testing.T) {
	localized := New("CUSTOM", http.StatusTeapot, "custom text").Localize("en")

	assert.Equal(t, "custom text", localized.Message)
}

func TestLocalize_PreservesOriginal(t *testing.T) {
	original := ErrOrderNotFound()

	localized := original.Localize("en")

	assert.Equal(t, "order not found", localized.Message)
	assert.Equal(t, "Không tìm thấy đơn hàng", original.Message)
}

func TestErrInvalidRequestAppendsDetail(t *testing.T) {
	appErr := ErrInvalidRequest("amount is required")

	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Equal(t, "Yêu cầu không hợp lệ: amount is required", appErr.Message)
}
