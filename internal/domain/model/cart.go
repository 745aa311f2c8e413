package model

import "github.com/shopspring/decimal"

// セッションごとのカート
// Linesは追加順（=表示順）。
type Cart struct {
	Lines  []CartLine `json:"lines"`
	IsOpen bool       `json:"is_open"`
}

// Total は毎回計算する（キャッシュしない）。
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// ItemsCount は数量の合計（明細数ではない）。
func (c Cart) ItemsCount() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IndexOf は商品IDの明細位置。無ければ -1。
func (c Cart) IndexOf(productID string) int {
	for i, l := range c.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
