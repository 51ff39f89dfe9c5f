package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is the subset of the redis client the gateway needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Reader interface {
	GetProduct(ctx context.Context, id uint64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

type GatewayInterface interface {
	Reader
	UpdateRating(ctx context.Context, id uint64, rating *float64, count int) (bool, error)
}

var _ GatewayInterface = (*Gateway)(nil)

// Gateway reads the catalog through a cache-aside redis layer. A nil cache
// disables caching.
type Gateway struct {
	repo  repository.ProductRepository
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewGateway(repo repository.ProductRepository, cache Cache, ttl time.Duration, log *zap.Logger) *Gateway {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Gateway{repo: repo, cache: cache, ttl: ttl, log: log}
}

func cacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

func (g *Gateway) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	if g.cache != nil {
		cached, err := g.cache.Get(ctx, cacheKey(id)).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		} else if err != redis.Nil {
			g.log.Warn("product cache read failed", zap.Uint64("product_id", id), zap.Error(err))
		}
	}

	p, err := g.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}

	g.store(ctx, p)
	return p, nil
}

func (g *Gateway) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return g.repo.List(ctx, filter)
}

func (g *Gateway) UpdateRating(ctx context.Context, id uint64, rating *float64, count int) (bool, error) {
	applied, err := g.repo.UpdateRating(ctx, id, rating, count)
	if err != nil {
		return false, err
	}
	g.Invalidate(ctx, id)
	return applied, nil
}

func (g *Gateway) Invalidate(ctx context.Context, ids ...uint64) {
	if g.cache == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}
	if err := g.cache.Del(ctx, keys...).Err(); err != nil {
		g.log.Warn("product cache invalidate failed", zap.Error(err))
	}
}

// Warm overwrites the cached entries for products.
func (g *Gateway) Warm(ctx context.Context, products []domain.Product) {
	for i := range products {
		g.store(ctx, &products[i])
	}
}

func (g *Gateway) store(ctx context.Context, p *domain.Product) {
	if g.cache == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, cacheKey(p.ID), data, g.ttl).Err(); err != nil {
		g.log.Warn("product cache write failed", zap.Uint64("product_id", p.ID), zap.Error(err))
	}
}
