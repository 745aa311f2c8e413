package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品カタログの取得だけを約束。
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	// 無ければ ErrNotFound
	FindByID(ctx context.Context, id string) (model.Product, error)
}
