package services

import (
	"context"
	"time"

	"github.com/freshfruit/storefront/apperrors"
	"github.com/freshfruit/storefront/logger"
	"github.com/freshfruit/storefront/models"

	"go.uber.org/zap"
)

type IOrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID int64) ([]models.Order, error)
}

// CreateOrderRequest is the checkout submission: the customer block,
// the cart snapshot, and the client-computed total.
type CreateOrderRequest struct {
	Customer models.Customer   `json:"customer" binding:"required"`
	Items    []models.CartItem `json:"items" binding:"required"`
	Total    int64             `json:"total"`
}

// OrderService creates and lists orders for an authenticated identity.
type OrderService struct {
	orderRepo IOrderRepository
}

func NewOrderService(orderRepo IOrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// Create persists one order for the identity in claims. Items and
// total are stored verbatim: the total is client-computed and never
// recomputed against the catalog, a known correctness gap inherited
// from the legacy storefront.
func (s *OrderService) Create(ctx context.Context, claims *Claims, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.New(400, "At least one item is required", nil)
	}

	order := &models.Order{
		ID:        nextID(),
		UserID:    claims.ID,
		Name:      req.Customer.Name,
		Email:     req.Customer.Email,
		Items:     req.Items,
		Total:     req.Total,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		logger.Error(ctx, "Failed to persist order", err, zap.Int64("user_id", claims.ID))
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	logger.Info(ctx, "Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int("items", len(order.Items)),
		zap.Int64("total", order.Total),
	)
	return order, nil
}

// ListForUser returns the identity's orders in creation order, oldest
// first.
func (s *OrderService) ListForUser(ctx context.Context, claims *Claims) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, claims.ID)
	if err != nil {
		logger.Error(ctx, "Failed to fetch orders", err, zap.Int64("user_id", claims.ID))
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return orders, nil
}
