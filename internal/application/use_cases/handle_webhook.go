package use_cases

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

const (
	EventPaymentIntentSucceeded      = "payment_intent.succeeded"
	EventPaymentIntentPaymentFailed  = "payment_intent.payment_failed"
	EventPaymentIntentCanceled       = "payment_intent.canceled"
	EventPaymentIntentRequiresAction = "payment_intent.requires_action"
)

type WebhookAck struct {
	Received  bool   `json:"received"`
	WebhookID string `json:"webhookId"`
	EventType string `json:"eventType"`
	Processed bool   `json:"processed"`
	Duplicate bool   `json:"duplicate"`
}

// HandleWebhookUseCase is the only writer of order payment status.
type HandleWebhookUseCase struct {
	verifier domain.WebhookVerifier
	orders   domain.OrderRepository
	events   domain.WebhookEventRepository
	eventTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewHandleWebhookUseCase(
	verifier domain.WebhookVerifier,
	orders domain.OrderRepository,
	events domain.WebhookEventRepository,
	eventTTL time.Duration,
	logger *slog.Logger,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		verifier: verifier,
		orders:   orders,
		events:   events,
		eventTTL: eventTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *HandleWebhookUseCase) Execute(ctx context.Context, payload []byte, signature string) (*WebhookAck, error) {
	if signature == "" {
		return nil, apperrors.ErrWebhookSignatureMissing()
	}
	if !uc.verifier.Configured() {
		uc.logger.ErrorContext(ctx, "webhook secret is not configured")
		return nil, apperrors.ErrWebhookNotConfigured()
	}

	event, err := uc.verifier.Verify(payload, signature)
	if err != nil {
		uc.logger.WarnContext(ctx, "rejected webhook with invalid signature", "error", err.Error())
		return nil, apperrors.ErrWebhookSignatureInvalid()
	}

	ack := &WebhookAck{
		Received:  true,
		WebhookID: event.ID,
		EventType: event.Type,
		Processed: true,
	}

	if uc.alreadyProcessed(ctx, event.ID) {
		uc.logger.InfoContext(ctx, "duplicate webhook delivery", "event_id", event.ID, "event_type", event.Type)
		ack.Duplicate = true
		return ack, nil
	}

	receivedAt := uc.now()
	outcome, err := uc.dispatch(ctx, event)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, event, outcome, receivedAt)

	// An order committed after the lookup but before the record above would
	// not have seen the parked event, so look once more.
	if outcome == domain.WebhookOutcomeOrderNotFound {
		recheck, err := uc.dispatch(ctx, event)
		if err == nil && recheck != outcome {
			uc.record(ctx, event, recheck, receivedAt)
		}
	}
	return ack, nil
}

func (uc *HandleWebhookUseCase) alreadyProcessed(ctx context.Context, eventID string) bool {
	if uc.events == nil {
		return false
	}
	existing, err := uc.events.FindByEventID(ctx, eventID)
	if err != nil {
		uc.logger.WarnContext(ctx, "webhook event lookup failed", "event_id", eventID, "error", err.Error())
		return false
	}
	// A delivery parked for a missing order is retried in full.
	return existing != nil && existing.ProcessedAt != nil && !existing.Pending()
}

func (uc *HandleWebhookUseCase) dispatch(ctx context.Context, event *domain.VerifiedEvent) (domain.WebhookOutcome, error) {
	switch event.Type {
	case EventPaymentIntentSucceeded:
		return uc.transition(ctx, event, domain.PaymentStatusPaid)
	case EventPaymentIntentPaymentFailed:
		return uc.transition(ctx, event, domain.PaymentStatusFailed)
	case EventPaymentIntentCanceled, EventPaymentIntentRequiresAction:
		uc.logger.InfoContext(ctx, "payment intent event noted", "event_type", event.Type, "payment_intent_id", intentID(event))
		return domain.WebhookOutcomeIgnored, nil
	default:
		uc.logger.InfoContext(ctx, "unhandled webhook event type", "event_type", event.Type)
		return domain.WebhookOutcomeIgnored, nil
	}
}

func (uc *HandleWebhookUseCase) transition(ctx context.Context, event *domain.VerifiedEvent, status domain.PaymentStatus) (domain.WebhookOutcome, error) {
	piID := intentID(event)
	if piID == "" {
		uc.logger.WarnContext(ctx, "payment intent event without intent", "event_id", event.ID)
		return domain.WebhookOutcomeIgnored, nil
	}

	order, err := uc.orders.FindByPaymentIntentID(ctx, piID)
	if err != nil {
		uc.logger.ErrorContext(ctx, "order lookup failed", "payment_intent_id", piID, "error", err.Error())
		return "", apperrors.ErrWebhookProcessingFailed()
	}
	if order == nil {
		uc.logger.WarnContext(ctx, "no order for payment intent", "payment_intent_id", piID, "event_type", event.Type)
		return domain.WebhookOutcomeOrderNotFound, nil
	}

	changed, err := uc.orders.UpdatePaymentStatus(ctx, order.ID, status, uc.now())
	if err != nil {
		uc.logger.ErrorContext(ctx, "order payment status update failed", "order_id", order.ID, "error", err.Error())
		return "", apperrors.ErrWebhookProcessingFailed()
	}
	if !changed {
		uc.logger.InfoContext(ctx, "order payment already final", "order_id", order.ID, "payment_status", order.PaymentStatus)
		return domain.WebhookOutcomeAlreadyFinal, nil
	}

	uc.logger.InfoContext(ctx, "order payment status updated",
		"order_id", order.ID,
		"payment_intent_id", piID,
		"payment_status", status,
	)
	if status == domain.PaymentStatusPaid {
		return domain.WebhookOutcomePaid, nil
	}
	return domain.WebhookOutcomeFailed, nil
}

func (uc *HandleWebhookUseCase) record(ctx context.Context, event *domain.VerifiedEvent, outcome domain.WebhookOutcome, receivedAt time.Time) {
	if uc.events == nil {
		return
	}
	processedAt := uc.now()
	err := uc.events.Save(ctx, &domain.WebhookEvent{
		EventID:         event.ID,
		EventType:       event.Type,
		PaymentIntentID: intentID(event),
		Payload:         datatypes.JSON(event.Payload),
		Outcome:         outcome,
		ReceivedAt:      receivedAt,
		ProcessedAt:     &processedAt,
		ExpiresAt:       receivedAt.Add(uc.eventTTL),
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "webhook event log write failed", "event_id", event.ID, "error", err.Error())
	}
}

func intentID(event *domain.VerifiedEvent) string {
	if event.Intent == nil {
		return ""
	}
	return event.Intent.ID
}
