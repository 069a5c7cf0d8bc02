package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	gormdb "github.com/jameshoangcyber/nexuskit-webapp/internal/infrastructure/gorm"
)

type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) domain.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) conn(ctx context.Context) *gorm.DB {
	return gormdb.ExtractTx(ctx, r.db).WithContext(ctx)
}

func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	err := r.conn(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateOrder
	}
	return err
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.conn(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Order, error) {
	var order domain.Order
	err := r.conn(ctx).Where("stripe_payment_intent_id = ?", paymentIntentID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePaymentStatus only matches rows still pending, which makes
// redelivered events no-ops.
func (r *OrderRepo) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, at time.Time) (bool, error) {
	updates := map[string]any{
		"payment_status": status,
		"updated_at":     at,
	}
	if status == domain.PaymentStatusPaid {
		updates["paid_at"] = at
	}

	res := r.conn(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND payment_status = ?", id, domain.PaymentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
