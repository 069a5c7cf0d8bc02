package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/use_cases"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/presentation/echo/middleware"
)

const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	createIntent   *use_cases.CreateIntentUseCase
	describeConfig *use_cases.DescribeConfigUseCase
	handleWebhook  *use_cases.HandleWebhookUseCase
	retryPayment   *use_cases.RetryPaymentUseCase
}

func NewPaymentHandler(container *use_cases.Container) *PaymentHandler {
	return &PaymentHandler{
		createIntent:   container.CreateIntent,
		describeConfig: container.DescribeConfig,
		handleWebhook:  container.HandleWebhook,
		retryPayment:   container.RetryPayment,
	}
}

type createIntentRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency" validate:"omitempty,len=3,alpha"`
	Metadata map[string]string `json:"metadata"`
}

type createIntentResponse struct {
	Success         bool        `json:"success"`
	ClientSecret    string      `json:"clientSecret"`
	PaymentIntentID string      `json:"paymentIntentId"`
	Amount          json.Number `json:"amount"`
	Currency        string      `json:"currency"`
	RequestID       string      `json:"requestId"`
}

func idempotencyKey(c echo.Context) string {
	if key := c.Request().Header.Get("Idempotency-Key"); key != "" {
		return key
	}
	return c.Request().Header.Get("X-Idempotency-Key")
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	requestID := middleware.GetRequestID(c)
	out, err := h.createIntent.Execute(c.Request().Context(), use_cases.CreateIntentInput{
		Amount:         req.Amount,
		Currency:       req.Currency,
		Metadata:       req.Metadata,
		IdempotencyKey: idempotencyKey(c),
		RequestID:      requestID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createIntentResponse{
		Success:         true,
		ClientSecret:    out.ClientSecret,
		PaymentIntentID: out.PaymentIntentID,
		Amount:          json.Number(out.Amount.String()),
		Currency:        out.Currency,
		RequestID:       requestID,
	})
}

func (h *PaymentHandler) DescribeConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.describeConfig.Execute())
}

// Webhook needs the body exactly as sent; the signature covers raw bytes.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return apperrors.ErrInvalidRequest("unreadable body")
	}

	ack, err := h.handleWebhook.Execute(c.Request().Context(), payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ack)
}

func (h *PaymentHandler) Retry(c echo.Context) error {
	out, err := h.retryPayment.Execute(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) ClearRetry(c echo.Context) error {
	if err := h.retryPayment.Clear(c.Request().Context(), c.Param("key")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
