package catalog

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// StaticCatalog は組み込みの商品・記事・ギャラリー。
// バックエンドが無い環境（開発・テスト）で使う。
type StaticCatalog struct {
	products []model.Product
	posts    []model.BlogPost
}

// DI
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		products: staticProducts(),
		posts:    staticPosts(),
	}
}

func (s *StaticCatalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *StaticCatalog) FindByID(ctx context.Context, id string) (model.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (s *StaticCatalog) ListPosts(ctx context.Context) ([]model.BlogPost, error) {
	out := make([]model.BlogPost, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *StaticCatalog) FindPost(ctx context.Context, id string) (model.BlogPost, error) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return model.BlogPost{}, repo.ErrNotFound
}

// ギャラリーは商品のSVGをそのまま使う
func (s *StaticCatalog) ListGallery(ctx context.Context) ([]model.GalleryItem, error) {
	out := make([]model.GalleryItem, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, model.GalleryItem{
			ID:    p.ID,
			Title: p.Title,
			Asset: p.Asset,
		})
	}
	return out, nil
}

func svg(body string) string {
	return `<svg class="w-full h-48" viewBox="0 0 300 200" fill="none" xmlns="http://www.w3.org/2000/svg">` +
		strings.TrimSpace(body) + `</svg>`
}

func staticProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Title:       "Cozy Blankets",
			Description: "Warm, handcrafted blankets perfect for Himalayan winters",
			Price:       decimal.NewFromInt(2499),
			Category:    "home-decor",
			Asset: model.SvgAsset(svg(`
<rect x="20" y="20" width="260" height="160" rx="10" fill="#e8bd7d" opacity="0.3"/>
<path d="M40 60 Q80 40 120 60 Q160 80 200 60 Q240 40 280 60" stroke="#75785b" stroke-width="3" fill="none"/>
<path d="M40 100 Q80 80 120 100 Q160 120 200 100 Q240 80 280 100" stroke="#75785b" stroke-width="3" fill="none"/>
<path d="M40 140 Q80 120 120 140 Q160 160 200 140 Q240 120 280 140" stroke="#75785b" stroke-width="3" fill="none"/>`)),
		},
		{
			ID:          "2",
			Title:       "Amigurumi Toys",
			Description: "Adorable handmade toys for children and collectors",
			Price:       decimal.NewFromInt(899),
			Category:    "toys",
			Asset: model.SvgAsset(svg(`
<circle cx="150" cy="80" r="35" fill="#e8bd7d"/>
<circle cx="135" cy="75" r="8" fill="#75785b"/>
<circle cx="165" cy="75" r="8" fill="#75785b"/>
<path d="M140 90 Q150 95 160 90" stroke="#75785b" stroke-width="2" fill="none"/>
<ellipse cx="150" cy="130" rx="40" ry="50" fill="#e8bd7d" opacity="0.7"/>
<circle cx="120" cy="140" r="15" fill="#e8bd7d" opacity="0.5"/>
<circle cx="180" cy="140" r="15" fill="#e8bd7d" opacity="0.5"/>`)),
		},
		{
			ID:          "3",
			Title:       "Home Decor",
			Description: "Beautiful cushions, wall hangings, and decorative pieces",
			Price:       decimal.NewFromInt(1299),
			Category:    "home-decor",
			Asset: model.SvgAsset(svg(`
<rect x="80" y="40" width="140" height="120" rx="5" fill="#e8bd7d" opacity="0.3"/>
<circle cx="150" cy="100" r="40" fill="#75785b" opacity="0.4"/>
<path d="M130 100 L150 80 L170 100 L150 120 Z" fill="#e8bd7d"/>
<circle cx="150" cy="100" r="15" fill="#75785b" opacity="0.6"/>`)),
		},
		{
			ID:          "4",
			Title:       "Accessories",
			Description: "Scarves, bags, and fashion accessories",
			Price:       decimal.NewFromInt(699),
			Category:    "accessories",
			Asset: model.SvgAsset(svg(`
<circle cx="150" cy="100" r="60" fill="#e8bd7d" opacity="0.3"/>
<path d="M150 50 L160 80 L190 85 L165 105 L172 135 L150 120 L128 135 L135 105 L110 85 L140 80 Z" fill="#75785b" opacity="0.6"/>
<circle cx="150" cy="100" r="25" fill="#e8bd7d"/>`)),
		},
		{
			ID:          "5",
			Title:       "Baby Items",
			Description: "Soft booties, hats, and baby blankets",
			Price:       decimal.NewFromInt(599),
			Category:    "clothing",
			Asset: model.SvgAsset(svg(`
<circle cx="150" cy="90" r="45" fill="#e8bd7d" opacity="0.4"/>
<circle cx="140" cy="85" r="6" fill="#75785b"/>
<circle cx="160" cy="85" r="6" fill="#75785b"/>
<path d="M135 100 Q150 110 165 100" stroke="#75785b" stroke-width="2" fill="none"/>
<rect x="120" y="130" width="60" height="40" rx="5" fill="#e8bd7d" opacity="0.5"/>`)),
		},
		{
			ID:          "6",
			Title:       "Table Runners",
			Description: "Elegant table decor for special occasions",
			Price:       decimal.NewFromInt(1199),
			Category:    "home-decor",
			Asset: model.SvgAsset(svg(`
<rect x="40" y="80" width="220" height="60" rx="8" fill="#e8bd7d" opacity="0.3"/>
<circle cx="80" cy="110" r="20" fill="#75785b" opacity="0.4"/>
<circle cx="150" cy="110" r="20" fill="#75785b" opacity="0.4"/>
<circle cx="220" cy="110" r="20" fill="#75785b" opacity="0.4"/>`)),
		},
	}
}

func staticPosts() []model.BlogPost {
	posts := []model.BlogPost{
		{
			ID:       "1",
			Title:    "The Art of Handmade Crochet: A Journey from the Hills",
			Excerpt:  "Discover the traditional techniques and stories behind our handcrafted crochet items, made with love by skilled artisans in the Himalayan region.",
			Date:     "2024-01-15",
			Category: "Craft Stories",
			ReadTime: "5 min read",
			Tags:     []string{"crochet", "artisans", "himalaya"},
		},
		{
			ID:       "2",
			Title:    "Sustainable Yarn: Choosing Eco-Friendly Materials",
			Excerpt:  "Learn about our commitment to sustainability and how we source premium quality, eco-friendly yarns for our crochet creations.",
			Date:     "2024-01-10",
			Category: "Sustainability",
			ReadTime: "4 min read",
			Tags:     []string{"yarn", "eco-friendly"},
		},
		{
			ID:       "3",
			Title:    "Caring for Your Handcrafted Crochet Items",
			Excerpt:  "Essential tips and tricks to maintain the beauty and longevity of your handmade crochet pieces, ensuring they last for years to come.",
			Date:     "2024-01-05",
			Category: "Care Guide",
			ReadTime: "3 min read",
			Tags:     []string{"care", "crochet"},
		},
		{
			ID:       "4",
			Title:    "Supporting Local Artisans: Our Mission",
			Excerpt:  "How every purchase from Bunai From Hills directly supports families and communities in the Himalayan region, preserving traditional craftsmanship.",
			Date:     "2023-12-28",
			Category: "Community",
			ReadTime: "6 min read",
			Tags:     []string{"artisans", "community"},
		},
		{
			ID:       "5",
			Title:    "Crochet Trends: What's Hot in 2024",
			Excerpt:  "Explore the latest trends in crochet design, from modern patterns to classic styles that never go out of fashion.",
			Date:     "2023-12-20",
			Category: "Trends",
			ReadTime: "5 min read",
			Tags:     []string{"trends", "crochet"},
		},
		{
			ID:       "6",
			Title:    "The Perfect Gift: Handmade with Heart",
			Excerpt:  "Why handmade crochet items make the perfect gift for your loved ones, bringing warmth and meaning to special occasions.",
			Date:     "2023-12-15",
			Category: "Gift Ideas",
			ReadTime: "4 min read",
			Tags:     []string{"gifts"},
		},
	}
	for i := range posts {
		posts[i].Author = "Bunai Team"
		// 本文は抜粋と同じ
		posts[i].Content = posts[i].Excerpt
	}
	return posts
}
