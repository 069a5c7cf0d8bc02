package use_cases

import (
	"context"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

type GetOrderUseCase struct {
	orders domain.OrderRepository
}

func NewGetOrderUseCase(orders domain.OrderRepository) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.ErrInternal()
	}
	if order == nil {
		return nil, apperrors.ErrOrderNotFound()
	}
	return order, nil
}
