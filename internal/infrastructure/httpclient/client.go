// Package httpclient calls the payment HTTP API from the buyer's side.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/classifier"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL  string
	http     *http.Client
	language string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLanguage sets Accept-Language so error messages come back localized.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createIntentRequest struct {
	Amount   json.Number       `json:"amount"`
	Currency string            `json:"currency,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type createIntentResponse struct {
	Success         bool   `json:"success"`
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Currency        string `json:"currency"`
	RequestID       string `json:"requestId"`
}

type errorResponse struct {
	Error       string   `json:"error"`
	Code        string   `json:"code"`
	Type        string   `json:"type"`
	Retryable   bool     `json:"retryable"`
	Suggestions []string `json:"suggestions"`
	RequestID   string   `json:"requestId"`
}

// CreateIntent asks the server for a payment intent. Error bodies are
// turned back into classified payment errors.
func (c *Client) CreateIntent(ctx context.Context, req domain.IntentRequest) (*domain.IntentResult, error) {
	body, err := json.Marshal(createIntentRequest{
		Amount:   json.Number(req.Amount.String()),
		Currency: req.Currency,
		Metadata: req.Metadata,
	})
	if err != nil {
		return nil, apperrors.ErrUnknown().WithDetail(err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment/create-intent", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.ErrUnknown().WithDetail(err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	if c.language != "" {
		httpReq.Header.Set("Accept-Language", c.language)
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifier.Classify(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classifier.Classify(err)
	}

	if res.StatusCode >= 400 {
		return nil, decodeError(res.StatusCode, raw)
	}

	var out createIntentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.ErrAPI().WithDetail(fmt.Sprintf("unreadable create-intent response: %v", err))
	}
	if out.ClientSecret == "" {
		return nil, apperrors.ErrMissingClientSecret()
	}

	return &domain.IntentResult{
		PaymentIntentID: out.PaymentIntentID,
		ClientSecret:    out.ClientSecret,
		Currency:        out.Currency,
		Status:          domain.IntentStatusRequiresPaymentMethod,
	}, nil
}

func decodeError(status int, raw []byte) *apperrors.PaymentError {
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Code == "" {
		return classifier.Classify(&classifier.ProviderError{
			Type:    "api_error",
			Message: strings.TrimSpace(string(raw)),
			Status:  status,
		})
	}

	typ := apperrors.ErrorType(body.Type)
	if typ == "" {
		typ = apperrors.TypeAPI
	}
	payErr := apperrors.NewPaymentError(body.Code, typ, body.Retryable, status).WithDetail(body.Error)
	if len(body.Suggestions) > 0 {
		payErr.Suggestions = body.Suggestions
	}
	return payErr
}

// Online reports whether the server answers its liveness probe.
func (c *Client) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	res, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	return res.StatusCode < 500
}
