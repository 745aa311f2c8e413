package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// 絞り込みの「すべて」
const CategoryAll = "all"

// カテゴリセレクタの選択肢
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var categories = []Category{
	{ID: CategoryAll, Name: "All Products"},
	{ID: "crochet", Name: "Crochet Items"},
	{ID: "home-decor", Name: "Home Decor"},
	{ID: "accessories", Name: "Accessories"},
	{ID: "toys", Name: "Toys"},
	{ID: "clothing", Name: "Clothing"},
	{ID: "bags", Name: "Bags"},
}

// Categories は固定の一覧（コピー）
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// FilterProducts はカテゴリと検索語の両方に合う商品を元の順で返す。
// カテゴリはタグに含まれるか、タイトルに含まれればOK（ゆるい一致）。
func FilterProducts(products []model.Product, query, category string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(category))

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(c, p.Category, p.Title) {
			continue
		}
		if q != "" && !containsFold(q, p.Title, p.Description) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterPosts は記事版。検索語はタイトル・抜粋・タグのどれか。
func FilterPosts(posts []model.BlogPost, query, category string) []model.BlogPost {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(category))

	out := make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if !matchesCategory(c, p.Category, p.Title) {
			continue
		}
		if q != "" {
			fields := append([]string{p.Title, p.Excerpt}, p.Tags...)
			if !containsFold(q, fields...) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// c は小文字化済み
func matchesCategory(c, itemCategory, title string) bool {
	if c == "" || c == CategoryAll {
		return true
	}
	if itemCategory != "" && strings.Contains(strings.ToLower(itemCategory), c) {
		return true
	}
	return strings.Contains(strings.ToLower(title), c)
}

// q は小文字化済み
func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

type CatalogUsecase struct {
	catalog repo.CatalogSource
	logger  *zap.Logger
}

// DI
func NewCatalogUsecase(catalog repo.CatalogSource, logger *zap.Logger) *CatalogUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogUsecase{catalog: catalog, logger: logger}
}

// GET /productsの入力
type ListProductsInput struct {
	Q        string
	Category string
}

// 「X件中Y件を表示」
type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Shown int             `json:"shown"`
	Total int             `json:"total"`
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	all, err := u.catalog.ListProducts(ctx)
	if err != nil {
		u.logger.Error("catalog load failed", zap.Error(err))
		return ProductListOutput{}, NewHTTPError(http.StatusBadGateway, "Unable to load products")
	}

	items := FilterProducts(all, in.Q, in.Category)
	return ProductListOutput{
		Items: items,
		Shown: len(items),
		Total: len(all),
	}, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.catalog.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		u.logger.Error("catalog lookup failed", zap.String("product_id", id), zap.Error(err))
		return model.Product{}, NewHTTPError(http.StatusBadGateway, "Unable to load products")
	}
	return p, nil
}

// カタログそのもの（カート復元用）
func (u *CatalogUsecase) Source() repo.CatalogSource {
	return u.catalog
}
