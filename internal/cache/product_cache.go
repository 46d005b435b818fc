package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"crm-service/internal/filters"
	"crm-service/internal/models"
	"crm-service/internal/repository"
)

// CachedProductRepository is a cache-aside decorator over the real product
// repository. Redis failures are logged and fall through to the database; a
// degraded cache never turns into a caller-visible error.
type CachedProductRepository struct {
	realRepo repository.ProductRepository
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedProductRepository(realRepo repository.ProductRepository, redis *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{
		realRepo: realRepo,
		redis:    redis,
		ttl:      5 * time.Minute,
	}
}

func (c *CachedProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == "notfound" {
			return nil, repository.ErrNotFound
		}

		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			log.Printf("Failed to unmarshal cached product (continuing with DB): %v", err)
			break
		}

		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		log.Printf("Redis error (continuing with DB): %v", err)
	}

	product, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, "notfound", 1*time.Minute).Err(); setErr != nil {
				log.Printf("Failed to cache notfound: %v", setErr)
			}
		}
		return nil, err
	}

	jsonData, err := json.Marshal(product)
	if err != nil {
		log.Printf("Failed to marshal product: %v", err)
		return product, nil
	}

	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("failed to cache product: %v", err)
	}

	return product, nil
}

// List caches only the unfiltered listing; filtered queries always hit the
// database.
func (c *CachedProductRepository) List(ctx context.Context, f filters.ProductFilter) ([]models.Product, error) {
	if !f.IsZero() {
		return c.realRepo.List(ctx, f)
	}

	key := "products:all"

	data, err := c.redis.Get(ctx, key).Bytes()

	if err == nil {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		log.Printf("Failed to unmarshal cached products (continuing with DB): %v", err)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Redis error: %v (continuing with DB)", err)
	}

	products, err := c.realRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(products)
	if err != nil {
		log.Printf("failed to marshal products: %v", err)
	} else if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("failed to cache products: %v", err)
	}

	return products, nil
}

func (c *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := c.redis.Del(ctx, "products:all").Err(); err != nil {
		log.Printf("Failed to delete products cache: %v", err)
	}

	return c.realRepo.Create(ctx, product)
}

func (c *CachedProductRepository) RestockBelowThreshold(ctx context.Context, threshold, amount int) ([]models.Product, error) {
	updated, err := c.realRepo.RestockBelowThreshold(ctx, threshold, amount)
	if err != nil {
		return nil, err
	}

	keys := []string{"products:all"}
	for _, p := range updated {
		keys = append(keys, fmt.Sprintf("product:%d", p.ProductID))
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate restocked products cache: %v", err)
	}

	return updated, nil
}
