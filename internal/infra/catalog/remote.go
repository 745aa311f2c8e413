package catalog

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// 商品一覧を取ってくる約束（backend.Client）
type ProductFetcher interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// RemoteCatalog はバックエンドの商品一覧をTTLの間キャッシュする。
// 同時のキャッシュミスは1回の取得にまとめる。
type RemoteCatalog struct {
	fetcher ProductFetcher
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	sfg singleflight.Group

	mu        sync.RWMutex
	products  []model.Product
	byID      map[string]model.Product
	fetchedAt time.Time
}

// DI
func NewRemoteCatalog(fetcher ProductFetcher, ttl time.Duration, logger *zap.Logger) *RemoteCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteCatalog{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

func (c *RemoteCatalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, _, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, len(products))
	copy(out, products)
	return out, nil
}

// 一覧にしかAPIが無いので一覧から探す
func (c *RemoteCatalog) FindByID(ctx context.Context, id string) (model.Product, error) {
	_, byID, err := c.load(ctx)
	if err != nil {
		return model.Product{}, err
	}
	p, ok := byID[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

// Invalidate は次の呼び出しで取り直させる。
func (c *RemoteCatalog) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

func (c *RemoteCatalog) load(ctx context.Context) ([]model.Product, map[string]model.Product, error) {
	c.mu.RLock()
	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		products, byID := c.products, c.byID
		c.mu.RUnlock()
		return products, byID, nil
	}
	c.mu.RUnlock()

	_, err, shared := c.sfg.Do("products", func() (interface{}, error) {
		products, err := c.fetcher.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		byID := make(map[string]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		c.mu.Lock()
		c.products = products
		c.byID = byID
		c.fetchedAt = c.now()
		c.mu.Unlock()

		c.logger.Debug("catalog refreshed", zap.Int("count", len(products)))
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}
	if shared {
		c.logger.Debug("catalog load shared")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products, c.byID, nil
}
