package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// ギャラリー
type GalleryUsecase struct {
	gallery repo.GalleryRepository
	logger  *zap.Logger
}

// DI
func NewGalleryUsecase(gallery repo.GalleryRepository, logger *zap.Logger) *GalleryUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryUsecase{gallery: gallery, logger: logger}
}

// List は取得に失敗したら空を返す（エラーにしない）。
func (u *GalleryUsecase) List(ctx context.Context) []model.GalleryItem {
	items, err := u.gallery.ListGallery(ctx)
	if err != nil {
		u.logger.Warn("gallery load failed", zap.Error(err))
		return []model.GalleryItem{}
	}
	if items == nil {
		return []model.GalleryItem{}
	}
	return items
}

// お問い合わせ

const msgContactFallback = "Thank you for your message! We'll get back to you soon."

// usecaseがValidatorに依存する約束
type ContactValidator interface {
	ValidateContact(msg model.ContactMessage) error
}

type ContactUsecase struct {
	gateway   repo.ContactGateway
	validator ContactValidator
	logger    *zap.Logger
}

// DI
func NewContactUsecase(gateway repo.ContactGateway, validator ContactValidator, logger *zap.Logger) *ContactUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactUsecase{gateway: gateway, validator: validator, logger: logger}
}

// Submit は送信結果を通知（toast）で知らせる。
func (u *ContactUsecase) Submit(ctx context.Context, toasts *ToastQueue, in model.ContactMessage) (model.ContactResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := u.validator.ValidateContact(in); err != nil {
		return model.ContactResult{}, NewHTTPError(http.StatusBadRequest, "invalid input")
	}

	res, err := u.gateway.SubmitContact(ctx, in)
	if err != nil {
		msg := msgContactFallback
		var bm backendMessager
		if errors.As(err, &bm) && bm.BackendMessage() != "" {
			msg = bm.BackendMessage()
		}
		u.logger.Warn("contact submit failed", zap.Error(err))
		toasts.AddToast(msg, model.ToastError)
		return model.ContactResult{Success: false, Message: msg}, nil
	}

	msg := fmt.Sprintf("Thank you, %s! We've received your message and will get back to you soon at %s.", in.Name, in.Email)
	toasts.AddToast(msg, model.ToastSuccess)

	res.Success = true
	if res.Message == "" {
		res.Message = msg
	}
	return res, nil
}

// FAQ

// FAQ は固定の質問と回答（コピー）
func FAQ() []model.FAQEntry {
	out := make([]model.FAQEntry, len(faqEntries))
	copy(out, faqEntries)
	return out
}

var faqEntries = []model.FAQEntry{
	{
		Question: "How long does shipping take?",
		Answer:   "Shipping times vary by location. Metro cities typically receive orders in 5-7 business days, while other cities take 7-10 business days. Remote areas may take 10-15 business days. We provide tracking information once your order ships.",
	},
	{
		Question: "Do you offer free shipping?",
		Answer:   "Yes! We offer free shipping on all orders above ₹2,000. For orders below this amount, a shipping charge of ₹100 applies.",
	},
	{
		Question: "What payment methods do you accept?",
		Answer:   "We accept Cash on Delivery (COD) and Online Payment methods including UPI, Credit Cards, and Debit Cards. All payments are processed securely.",
	},
	{
		Question: "Are your products handmade?",
		Answer:   "Yes, all our products are handcrafted by skilled artisans from the Himalayan region. Each item is unique and made with care and attention to detail.",
	},
	{
		Question: "Can I return or exchange a product?",
		Answer:   "Due to the handmade nature of our products, we accept returns only for defective or damaged items, or if you receive the wrong product. Returns must be initiated within 7 days of delivery, and items must be in original condition with tags attached.",
	},
	{
		Question: "How do I care for my crochet items?",
		Answer:   "We recommend hand washing your crochet items in cold water with mild detergent. Gently squeeze out excess water and lay flat to dry. Avoid wringing or machine washing to preserve the quality and shape of your items.",
	},
	{
		Question: "Do you ship internationally?",
		Answer:   "Currently, we only ship within India. We are working on expanding our shipping to international destinations. Please check back with us or contact us for updates.",
	},
	{
		Question: "Can I customize an order?",
		Answer:   "Yes! We offer customization options for many of our products. Please contact us through our contact page with your requirements, and we will work with you to create a custom piece. Custom orders may take additional time to complete.",
	},
	{
		Question: "What materials do you use?",
		Answer:   "We use premium quality, natural yarns sourced sustainably. Our materials are chosen for their durability, comfort, and eco-friendly properties. Each product listing includes information about the materials used.",
	},
	{
		Question: "How can I track my order?",
		Answer:   "Once your order is shipped, you will receive a tracking number via email and SMS. You can use this tracking number on our website or the courier service's website to track your package in real-time.",
	},
}
