package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// ブログ記事の取得の約束。
type BlogRepository interface {
	ListPosts(ctx context.Context) ([]model.BlogPost, error)
	// 無ければ ErrNotFound
	FindPost(ctx context.Context, id string) (model.BlogPost, error)
}
