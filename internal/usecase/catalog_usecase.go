package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"upasana-backend/internal/domain"
	"upasana-backend/pkg/cache"
)

// CatalogUsecase fronts the remote product catalog with a TTL cache.
// Concurrent misses for the same product collapse into a single remote call.
// It implements domain.ProductSource itself so the cart usecase does not know
// whether a product came from cache or the wire.
type CatalogUsecase struct {
	source domain.ProductSource
	cache  cache.CacheService
	ttl    time.Duration
	sfg    singleflight.Group
}

func NewCatalogUsecase(source domain.ProductSource, cacheService cache.CacheService, ttl time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		source: source,
		cache:  cacheService,
		ttl:    ttl,
	}
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := "product:" + id
	if val, found := u.cache.Get(key); found {
		return val.(*domain.Product), nil
	}

	v, err, _ := u.sfg.Do(key, func() (interface{}, error) {
		product, err := u.source.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			u.cache.Set(key, product, u.ttl)
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// Invalidate drops a product from the cache so the next read refetches it.
func (u *CatalogUsecase) Invalidate(id string) {
	u.cache.Delete("product:" + id)
}
