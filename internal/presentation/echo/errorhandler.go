package echo

import (
	"errors"
	"log/slog"
	"net/http"

	echofw "github.com/labstack/echo/v4"

	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/presentation/echo/middleware"
)

// NewHTTPErrorHandler renders AppError and PaymentError values in the
// caller's Accept-Language. Anything else becomes INTERNAL_ERROR.
func NewHTTPErrorHandler(logger *slog.Logger) echofw.HTTPErrorHandler {
	return func(err error, c echofw.Context) {
		if c.Response().Committed {
			return
		}

		lang := c.Request().Header.Get("Accept-Language")
		requestID := middleware.GetRequestID(c)

		var payErr *apperrors.PaymentError
		if errors.As(err, &payErr) {
			localized := payErr.Localize(lang)
			_ = c.JSON(paymentStatus(localized), map[string]interface{}{
				"error":       localized.Message,
				"code":        localized.Code,
				"type":        localized.Type,
				"retryable":   localized.Retryable,
				"suggestions": localized.Suggestions,
				"requestId":   requestID,
			})
			return
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			localized := appErr.Localize(lang)
			_ = c.JSON(localized.HTTPCode, map[string]interface{}{
				"error":     localized.Message,
				"code":      localized.Code,
				"requestId": requestID,
			})
			return
		}

		var echoErr *echofw.HTTPError
		if errors.As(err, &echoErr) {
			_ = c.JSON(echoErr.Code, map[string]interface{}{
				"error":     http.StatusText(echoErr.Code),
				"code":      "HTTP_ERROR",
				"requestId": requestID,
			})
			return
		}

		logger.ErrorContext(c.Request().Context(), "unhandled error", "error", err.Error())
		internalErr := apperrors.ErrInternal().Localize(lang)
		_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":     internalErr.Message,
			"code":      internalErr.Code,
			"requestId": requestID,
		})
	}
}

func paymentStatus(e *apperrors.PaymentError) int {
	if e.HTTPCode == 0 {
		return http.StatusBadRequest
	}
	return e.HTTPCode
}
