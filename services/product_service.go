package services

import (
	"context"
	"errors"
	"sync"

	"github.com/freshfruit/storefront/apperrors"
	"github.com/freshfruit/storefront/logger"
	"github.com/freshfruit/storefront/models"
	"github.com/freshfruit/storefront/repository"
)

type IProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	SeedIfEmpty(ctx context.Context, defaults []models.Product) error
}

// DefaultCatalog is the catalog the store ships with, written on first
// use when the products collection is empty.
var DefaultCatalog = []models.Product{
	{
		ID:    1,
		Name:  "Apel Fuji",
		Desc:  "Apel merah segar dari Jepang",
		Price: 25000,
		Image: "https://images.unsplash.com/photo-1567306226416-28f0efdc88ce?w=400",
	},
	{
		ID:    2,
		Name:  "Pisang Cavendish",
		Desc:  "Pisang manis bergizi tinggi",
		Price: 18000,
		Image: "https://images.unsplash.com/photo-1574226516831-e1dff420e12a?w=400",
	},
	{
		ID:    3,
		Name:  "Jeruk Medan",
		Desc:  "Jeruk segar kaya vitamin C",
		Price: 22000,
		Image: "https://images.unsplash.com/photo-1615486364646-6e6be7f5e2a2?w=400",
	},
}

// ProductService serves the catalog, seeding the default products when
// the collection is empty and fronting reads with the cache manager.
type ProductService struct {
	productRepo IProductRepository
	cache       *CacheManager
	seed        sync.Once
}

func NewProductService(productRepo IProductRepository, cache *CacheManager) *ProductService {
	return &ProductService{productRepo: productRepo, cache: cache}
}

// List returns the whole catalog in insertion order.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	if cached, ok := s.cache.GetProductList(ctx); ok {
		return cached, nil
	}

	if err := s.seedOnce(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to fetch products", err)
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	s.cache.SetProductListAsync(products)
	return products, nil
}

// GetByID returns one product or NotFound.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}

	if err := s.seedOnce(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		logger.Error(ctx, "Failed to fetch product", err)
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	s.cache.SetProductAsync(product)
	return product, nil
}

// seedOnce writes the default catalog the first time a read finds the
// collection untouched, like the legacy storefront's lazy seed.
func (s *ProductService) seedOnce(ctx context.Context) error {
	var err error
	s.seed.Do(func() {
		err = s.productRepo.SeedIfEmpty(ctx, DefaultCatalog)
	})
	return err
}
