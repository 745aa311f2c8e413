package server

import (
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

// ルート登録に使うハンドラ一式
type Handlers struct {
	Catalog    *handler.CatalogHandler
	Cart       *handler.CartHandler
	Toast      *handler.ToastHandler
	Checkout   *handler.CheckoutHandler
	Storefront *handler.StorefrontHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", handler.Health)

	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Toast.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Storefront.RegisterRoutes(e)
}
