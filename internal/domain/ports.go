package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDuplicateOrder is returned by OrderRepository.Create when the payment
// intent id is already attached to another order.
var ErrDuplicateOrder = errors.New("order already exists")

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*Order, error)
	// UpdatePaymentStatus moves a pending order to status. It reports false
	// without error when the order is no longer pending.
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus, at time.Time) (bool, error)
	Ping(ctx context.Context) error
}

type WebhookEventRepository interface {
	FindByEventID(ctx context.Context, eventID string) (*WebhookEvent, error)
	// FindByPaymentIntentID returns the logged events for an intent, oldest
	// first.
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) ([]*WebhookEvent, error)
	// Save inserts the event, or overwrites an existing record only when
	// the new outcome replaces the recorded one.
	Save(ctx context.Context, event *WebhookEvent) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type IntentRequest struct {
	Amount         decimal.Decimal
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

type IntentResult struct {
	PaymentIntentID string
	ClientSecret    string
	Amount          int64
	Currency        string
	Status          IntentStatus
}

type IntentGateway interface {
	Configured() bool
	CreateIntent(ctx context.Context, req IntentRequest) (*IntentResult, error)
	Ping(ctx context.Context) error
}

// VerifiedEvent is a processor event whose signature has been checked.
type VerifiedEvent struct {
	ID      string
	Type    string
	Payload []byte
	Intent  *PaymentIntent
}

type WebhookVerifier interface {
	Configured() bool
	Verify(payload []byte, signatureHeader string) (*VerifiedEvent, error)
}
