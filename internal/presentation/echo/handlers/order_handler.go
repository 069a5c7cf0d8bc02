package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/application/use_cases"
	"github.com/jameshoangcyber/nexuskit-webapp/internal/domain"
	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

type OrderHandler struct {
	placeOrder *use_cases.PlaceOrderUseCase
	getOrder   *use_cases.GetOrderUseCase
}

func NewOrderHandler(container *use_cases.Container) *OrderHandler {
	return &OrderHandler{
		placeOrder: container.PlaceOrder,
		getOrder:   container.GetOrder,
	}
}

type orderItemRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	ProductName  string `json:"productName" validate:"required"`
	ProductImage string `json:"productImage"`
	Price        int64  `json:"price" validate:"gte=0"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
}

type shippingInfoRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"required"`
}

type placeOrderRequest struct {
	UserID                string              `json:"userId" validate:"required"`
	Items                 []orderItemRequest  `json:"items" validate:"required,min=1,dive"`
	Total                 int64               `json:"total" validate:"gt=0"`
	PaymentMethod         string              `json:"paymentMethod" validate:"required,oneof=cod stripe bank momo"`
	StripePaymentIntentID string              `json:"stripePaymentIntentId"`
	ShippingInfo          shippingInfoRequest `json:"shippingInfo"`
	Notes                 string              `json:"notes" validate:"max=1000"`
}

func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Price:        item.Price,
			Quantity:     item.Quantity,
		}
	}

	order, err := h.placeOrder.Execute(c.Request().Context(), use_cases.PlaceOrderInput{
		UserID:                req.UserID,
		Items:                 items,
		Total:                 req.Total,
		PaymentMethod:         domain.PaymentMethod(req.PaymentMethod),
		StripePaymentIntentID: req.StripePaymentIntentID,
		ShippingInfo: domain.ShippingInfo{
			Name:    req.ShippingInfo.Name,
			Phone:   req.ShippingInfo.Phone,
			Email:   req.ShippingInfo.Email,
			Address: req.ShippingInfo.Address,
		},
		Notes: req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.getOrder.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
