package use_cases

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

type PlaceOrderInput struct {
	UserID                string
	Items                 []domain.OrderItem
	Total                 int64
	PaymentMethod         domain.PaymentMethod
	StripePaymentIntentID string
	ShippingInfo          domain.ShippingInfo
	Notes                 string
}

type PlaceOrderUseCase struct {
	orders domain.OrderRepository
	events domain.WebhookEventRepository
	tx     domain.TransactionManager
	logger *slog.Logger
	now    func() time.Time
}

func NewPlaceOrderUseCase(
	orders domain.OrderRepository,
	events domain.WebhookEventRepository,
	tx domain.TransactionManager,
	logger *slog.Logger,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orders: orders,
		events: events,
		tx:     tx,
		logger: logger,
		now:    time.Now,
	}
}

// Execute stores a new order with a pending payment. The client-reported
// total must match the items. Payment status only moves on webhooks,
// including ones that arrived before the order and were parked.
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		Items:         in.Items,
		Status:        domain.OrderStatusPending,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		ShippingInfo:  in.ShippingInfo,
		Notes:         in.Notes,
	}
	order.Total = order.ItemsTotal()
	if in.Total != order.Total {
		uc.logger.WarnContext(ctx, "order total mismatch", "reported", in.Total, "computed", order.Total, "user_id", in.UserID)
		return nil, apperrors.ErrOrderTotalMismatch()
	}
	if piID := strings.TrimSpace(in.StripePaymentIntentID); piID != "" {
		order.StripePaymentIntentID = &piID
	}

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if order.StripePaymentIntentID != nil {
			existing, err := uc.orders.FindByPaymentIntentID(txCtx, *order.StripePaymentIntentID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicateOrder
			}
		}
		return uc.orders.Create(txCtx, order)
	})
	if errors.Is(err, domain.ErrDuplicateOrder) {
		return nil, apperrors.ErrOrderAlreadyExists()
	}
	if err != nil {
		uc.logger.ErrorContext(ctx, "order creation failed", "error", err.Error())
		return nil, apperrors.ErrInternal()
	}

	uc.logger.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"payment_method", order.PaymentMethod,
		"total", order.Total,
	)
	uc.applyParkedEvents(ctx, order)
	return order, nil
}

// applyParkedEvents settles a new order from verified webhook deliveries
// that were recorded as order_not_found before the order existed. A
// succeeded event wins over a failed one. Failures here only log; a
// redelivery of the parked event applies it as well.
func (uc *PlaceOrderUseCase) applyParkedEvents(ctx context.Context, order *domain.Order) {
	if uc.events == nil || order.StripePaymentIntentID == nil {
		return
	}
	events, err := uc.events.FindByPaymentIntentID(ctx, *order.StripePaymentIntentID)
	if err != nil {
		uc.logger.WarnContext(ctx, "parked webhook lookup failed", "order_id", order.ID, "error", err.Error())
		return
	}

	var parked []*domain.WebhookEvent
	var winner *domain.WebhookEvent
	for _, event := range events {
		if !event.Pending() {
			continue
		}
		parked = append(parked, event)
		switch event.EventType {
		case EventPaymentIntentSucceeded:
			if winner == nil || winner.EventType != EventPaymentIntentSucceeded {
				winner = event
			}
		case EventPaymentIntentPaymentFailed:
			if winner == nil {
				winner = event
			}
		}
	}
	if winner == nil {
		return
	}

	status := domain.PaymentStatusFailed
	if winner.EventType == EventPaymentIntentSucceeded {
		status = domain.PaymentStatusPaid
	}
	at := uc.now()
	changed, err := uc.orders.UpdatePaymentStatus(ctx, order.ID, status, at)
	if err != nil {
		uc.logger.WarnContext(ctx, "parked webhook apply failed", "order_id", order.ID, "event_id", winner.EventID, "error", err.Error())
		return
	}
	if changed {
		order.PaymentStatus = status
		if status == domain.PaymentStatusPaid {
			order.PaidAt = &at
		}
		uc.logger.InfoContext(ctx, "order settled from parked webhook",
			"order_id", order.ID,
			"event_id", winner.EventID,
			"payment_status", status,
		)
	}

	for _, event := range parked {
		outcome := domain.WebhookOutcomeAlreadyFinal
		if event == winner && changed {
			outcome = domain.WebhookOutcomePaid
			if status == domain.PaymentStatusFailed {
				outcome = domain.WebhookOutcomeFailed
			}
		}
		event.Outcome = outcome
		event.ProcessedAt = &at
		if err := uc.events.Save(ctx, event); err != nil {
			uc.logger.WarnContext(ctx, "webhook event log write failed", "event_id", event.EventID, "error", err.Error())
		}
	}
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if in.UserID == "" {
		return apperrors.ErrInvalidRequest("userId is required")
	}
	if len(in.Items) == 0 {
		return apperrors.ErrInvalidRequest("items must not be empty")
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Price < 0 {
			return apperrors.ErrInvalidRequest("invalid item " + item.ProductID)
		}
	}
	switch in.PaymentMethod {
	case domain.PaymentMethodCOD, domain.PaymentMethodBank, domain.PaymentMethodMomo:
	case domain.PaymentMethodStripe:
		if strings.TrimSpace(in.StripePaymentIntentID) == "" {
			return apperrors.ErrOrderIntentMissing()
		}
	default:
		return apperrors.ErrInvalidRequest("unsupported payment method")
	}
	return nil
}
