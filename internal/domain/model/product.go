package model

import "github.com/shopspring/decimal"

// 表示用アセットの種類
type AssetKind string

const (
	AssetNone     AssetKind = "none"
	AssetSvg      AssetKind = "svg"
	AssetImageURL AssetKind = "image_url"
)

// 商品画像（インラインSVG / 画像URL / なし）
type Asset struct {
	Kind  AssetKind `json:"kind"`
	Value string    `json:"value,omitempty"`
}

func NoAsset() Asset {
	return Asset{Kind: AssetNone}
}

func SvgAsset(markup string) Asset {
	if markup == "" {
		return NoAsset()
	}
	return Asset{Kind: AssetSvg, Value: markup}
}

func ImageURLAsset(url string) Asset {
	if url == "" {
		return NoAsset()
	}
	return Asset{Kind: AssetImageURL, Value: url}
}

// IsZero はアセット無しかどうか。
func (a Asset) IsZero() bool {
	return a.Kind == "" || a.Kind == AssetNone
}

// 商品（カタログから読み込んだら変更しない）
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Asset       Asset           `json:"asset"`
}
