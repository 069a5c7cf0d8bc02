package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

func TestCreateIntent_Success(t *testing.T) {
	var gotKey, gotLang string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/create-intent", r.URL.Path)
		gotKey = r.Header.Get("Idempotency-Key")
		gotLang = r.Header.Get("Accept-Language")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"clientSecret":"pi_1_secret_x","paymentIntentId":"pi_1","amount":500000,"currency":"vnd","requestId":"r1"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL+"/", WithLanguage("en")).CreateIntent(context.Background(), domain.IntentRequest{
		Amount:         decimal.NewFromInt(500000),
		Currency:       "vnd",
		IdempotencyKey: "key-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_1", res.PaymentIntentID)
	assert.Equal(t, "pi_1_secret_x", res.ClientSecret)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "en", gotLang)
	assert.Equal(t, float64(500000), gotBody["amount"])
}

func TestCreateIntent_ErrorBodyMapping(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantCode      string
		wantRetryable bool
		wantMessage   string
	}{
		{
			name:          "server validation error",
			status:        http.StatusBadRequest,
			body:          `{"error":"Số tiền tối thiểu là 1.000 VND","code":"AMOUNT_BELOW_MINIMUM","type":"validation_error","retryable":false}`,
			wantCode:      "AMOUNT_BELOW_MINIMUM",
			wantMessage:   "Số tiền tối thiểu là 1.000 VND",
		},
		{
			name:          "rate limited",
			status:        http.StatusTooManyRequests,
			body:          `{"error":"slow down","code":"RATE_LIMIT","type":"api_error","retryable":true}`,
			wantCode:      "RATE_LIMIT",
			wantRetryable: true,
			wantMessage:   "slow down",
		},
		{
			name:          "proxy html page",
			status:        http.StatusBadGateway,
			body:          `<html>bad gateway</html>`,
			wantCode:      "API_ERROR",
			wantRetryable: true,
		},
		{
			name:          "unauthorized without body",
			status:        http.StatusUnauthorized,
			body:          ``,
			wantCode:      "AUTH_ERROR",
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).CreateIntent(context.Background(), domain.IntentRequest{Amount: decimal.NewFromInt(500)})

			var payErr *apperrors.PaymentError
			require.ErrorAs(t, err, &payErr)
			assert.Equal(t, tt.wantCode, payErr.Code)
			assert.Equal(t, tt.wantRetryable, payErr.Retryable)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, payErr.Message)
			}
		})
	}
}

func TestCreateIntent_MissingClientSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"paymentIntentId":"pi_1"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateIntent(context.Background(), domain.IntentRequest{Amount: decimal.NewFromInt(5000)})

	var payErr *apperrors.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "MISSING_CLIENT_SECRET", payErr.Code)
}

func TestCreateIntent_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).CreateIntent(context.Background(), domain.IntentRequest{Amount: decimal.NewFromInt(5000)})

	var payErr *apperrors.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "CONNECTION_ERROR", payErr.Code)
	assert.True(t, payErr.Retryable)
}

func TestOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	c := New(srv.URL)

	assert.True(t, c.Online(context.Background()))

	srv.Close()
	assert.False(t, c.Online(context.Background()))
}
