package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	gormdb "github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/gorm"
)

type WebhookEventRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewWebhookEventRepo(db *gorm.DB) domain.WebhookEventRepository {
	return &WebhookEventRepo{db: db, now: time.Now}
}

func (r *WebhookEventRepo) conn(ctx context.Context) *gorm.DB {
	return gormdb.ExtractTx(ctx, r.db).WithContext(ctx)
}

func (r *WebhookEventRepo) FindByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error) {
	var event domain.WebhookEvent
	err := r.conn(ctx).Where("event_id = ?", eventID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *WebhookEventRepo) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) ([]*domain.WebhookEvent, error) {
	var events []*domain.WebhookEvent
	err := r.conn(ctx).
		Where("payment_intent_id = ?", paymentIntentID).
		Order("received_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Save inserts the event. On a redelivery the stored outcome is only
// overwritten by an outcome that replaces it, so a concurrent delivery
// cannot downgrade a recorded transition.
func (r *WebhookEventRepo) Save(ctx context.Context, event *domain.WebhookEvent) error {
	result := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(event)
	if result.Error != nil || result.RowsAffected > 0 {
		return result.Error
	}

	replaces := event.Outcome.Replaces()
	if len(replaces) == 0 {
		return nil
	}
	outcomes := make([]string, len(replaces))
	for i, o := range replaces {
		outcomes[i] = string(o)
	}
	return r.conn(ctx).
		Model(&domain.WebhookEvent{}).
		Where("event_id = ? AND outcome IN ?", event.EventID, outcomes).
		Updates(map[string]interface{}{
			"outcome":      event.Outcome,
			"processed_at": event.ProcessedAt,
		}).Error
}

func (r *WebhookEventRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.conn(ctx).
		Where("expires_at < ?", r.now()).
		Delete(&domain.WebhookEvent{})
	return result.RowsAffected, result.Error
}
