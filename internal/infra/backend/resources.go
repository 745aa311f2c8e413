package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// =====================
// 商品
// =====================

type productDTO struct {
	MongoID     model.FlexID    `json:"_id"`
	ID          model.FlexID    `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
}

// GET /products
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var dtos []productDTO
	if err := c.do(ctx, http.MethodGet, "/products", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]model.Product, 0, len(dtos))
	for _, d := range dtos {
		id := d.MongoID
		if id == "" {
			id = d.ID
		}
		if id == "" {
			continue
		}
		out = append(out, model.Product{
			ID:          string(id),
			Title:       d.Title,
			Description: d.Description,
			Price:       d.Price,
			Category:    d.Category,
			Asset:       model.ImageURLAsset(c.assetURL(d.ImageURL)),
		})
	}
	return out, nil
}

// =====================
// 注文
// =====================

// 金額はJSONの数値で送る（decimalの既定は文字列）
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

type orderItemDTO struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     amount `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type orderDTO struct {
	CustomerInfo  model.CustomerInfo  `json:"customerInfo"`
	Items         []orderItemDTO      `json:"items"`
	Subtotal      amount              `json:"subtotal"`
	Shipping      amount              `json:"shipping"`
	TotalAmount   amount              `json:"totalAmount"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
}

func toOrderDTO(o model.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     amount(it.Price),
			Quantity:  it.Quantity,
		})
	}
	return orderDTO{
		CustomerInfo:  o.CustomerInfo,
		Items:         items,
		Subtotal:      amount(o.Subtotal),
		Shipping:      amount(o.Shipping),
		TotalAmount:   amount(o.TotalAmount),
		PaymentMethod: o.PaymentMethod,
	}
}

// POST /orders
func (c *Client) SubmitOrder(ctx context.Context, order model.Order) (model.OrderResult, error) {
	var res model.OrderResult
	if err := c.do(ctx, http.MethodPost, "/orders", toOrderDTO(order), &res); err != nil {
		return model.OrderResult{}, err
	}
	return res, nil
}

// =====================
// お問い合わせ・ギャラリー
// =====================

// POST /contact
func (c *Client) SubmitContact(ctx context.Context, msg model.ContactMessage) (model.ContactResult, error) {
	var res model.ContactResult
	if err := c.do(ctx, http.MethodPost, "/contact", msg, &res); err != nil {
		return model.ContactResult{}, err
	}
	return res, nil
}

type galleryDTO struct {
	MongoID  model.FlexID `json:"_id"`
	ImageURL string       `json:"imageUrl"`
	Title    string       `json:"title"`
}

// GET /gallery
func (c *Client) ListGallery(ctx context.Context) ([]model.GalleryItem, error) {
	var dtos []galleryDTO
	if err := c.do(ctx, http.MethodGet, "/gallery", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]model.GalleryItem, 0, len(dtos))
	for i, d := range dtos {
		id := string(d.MongoID)
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		u := c.assetURL(d.ImageURL)
		out = append(out, model.GalleryItem{
			ID:       id,
			Title:    d.Title,
			ImageURL: u,
			Asset:    model.ImageURLAsset(u),
		})
	}
	return out, nil
}

// =====================
// ブログ
// =====================

type blogPostDTO struct {
	MongoID  model.FlexID `json:"_id"`
	ID       model.FlexID `json:"id"`
	Title    string       `json:"title"`
	Excerpt  string       `json:"excerpt"`
	Content  string       `json:"content"`
	Author   string       `json:"author"`
	Date     string       `json:"date"`
	Category string       `json:"category"`
	ReadTime string       `json:"readTime"`
	Tags     []string     `json:"tags"`
	ImageURL string       `json:"imageUrl"`
}

func (c *Client) toPost(d blogPostDTO) model.BlogPost {
	id := d.MongoID
	if id == "" {
		id = d.ID
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.BlogPost{
		ID:       string(id),
		Title:    d.Title,
		Excerpt:  d.Excerpt,
		Content:  d.Content,
		Author:   d.Author,
		Date:     d.Date,
		Category: d.Category,
		ReadTime: d.ReadTime,
		Tags:     tags,
		ImageURL: c.assetURL(d.ImageURL),
	}
}

// GET /blog
func (c *Client) ListPosts(ctx context.Context) ([]model.BlogPost, error) {
	var dtos []blogPostDTO
	if err := c.do(ctx, http.MethodGet, "/blog", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]model.BlogPost, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, c.toPost(d))
	}
	return out, nil
}

// GET /blog/:id  404は ErrNotFound
func (c *Client) FindPost(ctx context.Context, id string) (model.BlogPost, error) {
	var d blogPostDTO
	err := c.do(ctx, http.MethodGet, "/blog/"+url.PathEscape(id), nil, &d)
	if be, ok := asBackendError(err); ok && be.Status == http.StatusNotFound {
		return model.BlogPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, err
	}
	return c.toPost(d), nil
}
