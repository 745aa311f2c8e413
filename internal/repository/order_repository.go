package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 注文の送信先（バックエンド）。リトライはしない。
type OrderGateway interface {
	SubmitOrder(ctx context.Context, order model.Order) (model.OrderResult, error)
}
