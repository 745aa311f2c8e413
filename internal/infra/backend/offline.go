package backend

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
)

// API_BASE_URL が無いときの送信先。
// 注文は受け付けず、お問い合わせは受付済みとして返す。
type Offline struct{}

func (Offline) SubmitOrder(ctx context.Context, order model.Order) (model.OrderResult, error) {
	return model.OrderResult{}, &BackendError{
		Status:  http.StatusServiceUnavailable,
		Message: "Ordering is currently unavailable",
	}
}

func (Offline) SubmitContact(ctx context.Context, msg model.ContactMessage) (model.ContactResult, error) {
	return model.ContactResult{Success: true, Message: "Message received"}, nil
}
