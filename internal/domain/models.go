package domain

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodBank   PaymentMethod = "bank"
	PaymentMethodMomo   PaymentMethod = "momo"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IntentStatus mirrors the processor's PaymentIntent lifecycle.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusCanceled              IntentStatus = "canceled"
)

// Metadata keys attached to every intent this service creates.
const (
	MetaCorrelationID  = "correlationId"
	MetaOriginalAmount = "originalAmount"
	MetaRetryCount     = "retryCount"
	MetaRequestID      = "requestId"
	MetaCreatedAt      = "createdAt"
)

// PaymentIntent is a read view of the processor-owned intent. It is never
// persisted or mutated locally.
type PaymentIntent struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       IntentStatus      `json:"status"`
	ClientSecret string            `json:"-"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type OrderItem struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`
	Price        int64  `json:"price"`
	Quantity     int    `json:"quantity"`
}

type ShippingInfo struct {
	Name    string `json:"name" gorm:"type:varchar(200)"`
	Phone   string `json:"phone" gorm:"type:varchar(32)"`
	Email   string `json:"email" gorm:"type:varchar(200)"`
	Address string `json:"address" gorm:"type:text"`
}

type Order struct {
	ID                    string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID                string        `json:"userId" gorm:"type:varchar(100);index;not null"`
	Items                 []OrderItem   `json:"items" gorm:"serializer:json;type:text;not null"`
	Total                 int64         `json:"total" gorm:"not null"`
	Status                OrderStatus   `json:"status" gorm:"type:varchar(20);not null"`
	PaymentMethod         PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	PaymentStatus         PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);not null"`
	StripePaymentIntentID *string       `json:"stripePaymentIntentId,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	ShippingInfo          ShippingInfo  `json:"shippingInfo" gorm:"embedded;embeddedPrefix:shipping_"`
	Notes                 string        `json:"notes,omitempty" gorm:"type:text"`
	PaidAt                *time.Time    `json:"paidAt,omitempty"`
	CreatedAt             time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt             time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ItemsTotal is the authoritative total computed from line items.
func (o *Order) ItemsTotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.Price * int64(item.Quantity)
	}
	return sum
}

type WebhookOutcome string

const (
	WebhookOutcomePaid          WebhookOutcome = "paid"
	WebhookOutcomeFailed        WebhookOutcome = "failed"
	WebhookOutcomeIgnored       WebhookOutcome = "ignored"
	WebhookOutcomeOrderNotFound WebhookOutcome = "order_not_found"
	WebhookOutcomeAlreadyFinal  WebhookOutcome = "already_final"
)

// Replaces lists the recorded outcomes a new outcome may overwrite. An
// event parked as order_not_found can still be applied later, and a real
// transition wins over a concurrent delivery that saw already_final.
func (o WebhookOutcome) Replaces() []WebhookOutcome {
	switch o {
	case WebhookOutcomePaid, WebhookOutcomeFailed:
		return []WebhookOutcome{WebhookOutcomeOrderNotFound, WebhookOutcomeAlreadyFinal}
	case WebhookOutcomeAlreadyFinal, WebhookOutcomeIgnored:
		return []WebhookOutcome{WebhookOutcomeOrderNotFound}
	default:
		return nil
	}
}

// Pending reports whether the event still waits for its order.
func (e *WebhookEvent) Pending() bool {
	return e.Outcome == WebhookOutcomeOrderNotFound
}

// WebhookEvent is the delivery log of verified processor events.
type WebhookEvent struct {
	EventID         string         `json:"eventId" gorm:"primaryKey;type:varchar(255)"`
	EventType       string         `json:"eventType" gorm:"type:varchar(100);not null"`
	PaymentIntentID string         `json:"paymentIntentId,omitempty" gorm:"type:varchar(255);index"`
	Payload         datatypes.JSON `json:"-" gorm:"not null"`
	Outcome         WebhookOutcome `json:"outcome,omitempty" gorm:"type:varchar(32)"`
	ReceivedAt      time.Time      `json:"receivedAt" gorm:"not null"`
	ProcessedAt     *time.Time     `json:"processedAt,omitempty"`
	ExpiresAt       time.Time      `json:"expiresAt" gorm:"index;not null"`
}

func (Order) TableName() string {
	return "orders"
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
