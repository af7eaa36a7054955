package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/freshfruit/storefront/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "product:detail:"
	ProductListCacheKey    = "products:v:"
	CacheVersionKey        = "products:version"
	DefaultProductCacheTTL = 5 * time.Minute
)

// CacheManager fronts catalog reads with Redis. A nil manager (or one
// built without a client) disables caching without any caller checks.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{redis: client, ttl: DefaultProductCacheTTL}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// GetProductList retrieves the cached catalog listing.
func (cm *CacheManager) GetProductList(ctx context.Context) ([]models.Product, bool) {
	if !cm.enabled() {
		return nil, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listKey(version)).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cached), &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches the catalog listing asynchronously.
func (cm *CacheManager) SetProductListAsync(products []models.Product) {
	if !cm.enabled() {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.redis.Incr(bgCtx, CacheVersionKey).Result()
		if err != nil {
			return
		}

		jsonBytes, err := json.Marshal(products)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.listKey(version), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// GetProduct retrieves a cached product detail.
func (cm *CacheManager) GetProduct(ctx context.Context, id int64) (*models.Product, bool) {
	if !cm.enabled() {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.detailKey(id)).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err), zap.Int64("product_id", id))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a single product asynchronously.
func (cm *CacheManager) SetProductAsync(product *models.Product) {
	if !cm.enabled() {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		productJSON, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.Int64("product_id", product.ID))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.detailKey(product.ID), productJSON, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.Int64("product_id", product.ID))
		}
	}()
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}

func (cm *CacheManager) listKey(version int64) string {
	return fmt.Sprintf("%s%d", ProductListCacheKey, version)
}

func (cm *CacheManager) detailKey(id int64) string {
	return fmt.Sprintf("%s%d", ProductCachePrefix, id)
}
