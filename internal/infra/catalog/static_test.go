package catalog

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCatalog_Products(t *testing.T) {
	c := NewStaticCatalog()
	ctx := context.Background()

	ps, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 6)

	prices := []int64{2499, 899, 1299, 699, 599, 1199}
	for i, p := range ps {
		assert.True(t, decimal.NewFromInt(prices[i]).Equal(p.Price), p.Title)
		assert.Equal(t, model.AssetSvg, p.Asset.Kind)
		assert.Contains(t, p.Asset.Value, "<svg")
	}

	p, err := c.FindByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Amigurumi Toys", p.Title)

	_, err = c.FindByID(ctx, "7")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestStaticCatalog_ListIsCopy(t *testing.T) {
	c := NewStaticCatalog()
	ps, _ := c.ListProducts(context.Background())
	ps[0].Title = "changed"

	again, _ := c.ListProducts(context.Background())
	assert.Equal(t, "Cozy Blankets", again[0].Title)
}

func TestStaticCatalog_PostsAndGallery(t *testing.T) {
	c := NewStaticCatalog()
	ctx := context.Background()

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 6)
	assert.Equal(t, "Bunai Team", posts[0].Author)

	_, err = c.FindPost(ctx, "99")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	items, err := c.ListGallery(ctx)
	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.Equal(t, model.AssetSvg, items[0].Asset.Kind)
}
