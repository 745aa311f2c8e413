package model

import "github.com/shopspring/decimal"

// 注文明細（送信時点のカートのスナップショット）
type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}
