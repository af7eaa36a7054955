package repository

import (
	"context"
	"encoding/json"

	"github.com/freshfruit/storefront/database"
	"github.com/freshfruit/storefront/models"
)

// OrderRepository reads and writes the orders collection. Orders are
// append-only; the store keeps them in insertion order, which is the
// order listings return.
type OrderRepository struct {
	store database.Store
}

func NewOrderRepository(store database.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.store.Update(ctx, database.Orders, func(records []byte) ([]byte, error) {
		var orders []models.Order
		if err := json.Unmarshal(records, &orders); err != nil {
			return nil, err
		}
		orders = append(orders, *order)
		return json.Marshal(orders)
	})
}

// FindByUserID returns the user's orders oldest first.
func (r *OrderRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	if err := r.store.Get(ctx, database.Orders, &orders); err != nil {
		return nil, err
	}

	result := make([]models.Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}
