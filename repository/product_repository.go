package repository

import (
	"context"
	"encoding/json"

	"github.com/freshfruit/storefront/database"
	"github.com/freshfruit/storefront/models"
)

// ProductRepository reads the products collection.
type ProductRepository struct {
	store database.Store
}

func NewProductRepository(store database.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.store.Get(ctx, database.Products, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var products []models.Product
	if err := r.store.Get(ctx, database.Products, &products); err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// SeedIfEmpty writes defaults into the collection when it holds no
// records yet; an already-seeded catalog is left untouched.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context, defaults []models.Product) error {
	return r.store.Update(ctx, database.Products, func(records []byte) ([]byte, error) {
		var products []models.Product
		if err := json.Unmarshal(records, &products); err != nil {
			return nil, err
		}
		if len(products) > 0 {
			return records, nil
		}
		return json.Marshal(defaults)
	})
}
