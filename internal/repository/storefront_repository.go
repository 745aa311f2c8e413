package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type GalleryRepository interface {
	ListGallery(ctx context.Context) ([]model.GalleryItem, error)
}

// お問い合わせの送信先
type ContactGateway interface {
	SubmitContact(ctx context.Context, msg model.ContactMessage) (model.ContactResult, error)
}
