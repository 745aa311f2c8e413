package model

import "github.com/shopspring/decimal"

// カートの明細
// 同じ商品IDの明細は1つだけ、数量は1以上。
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// LineTotal は price × quantity。
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(l.Quantity))
}
