package handler

import (
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	sessions *usecase.SessionManager
	catalog  *usecase.CatalogUsecase
}

// DI
func NewCartHandler(sessions *usecase.SessionManager, catalog *usecase.CatalogUsecase) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: catalog}
}

type AddCartRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateCartItemRequest struct {
	Quantity *int64 `json:"quantity"`
}

type CartVisibilityRequest struct {
	Open *bool `json:"open"`
}

// /cart, /cart/items/:id を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.GET("", h.get)
	g.DELETE("", h.clear)
	g.POST("/items", h.add)
	g.PATCH("/items/:id", h.update)
	g.DELETE("/items/:id", h.remove)
	g.PUT("/visibility", h.visibility)
}

func (h *CartHandler) get(c echo.Context) error {
	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.Cart.Snapshot())
}

func (h *CartHandler) add(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product_id is required"})
	}

	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}

	ctx := c.Request().Context()
	p, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	snap := s.Cart.AddToCart(ctx, p)
	s.Toasts.AddToast(p.Title+" added to cart!", model.ToastSuccess)
	return c.JSON(http.StatusOK, snap)
}

func (h *CartHandler) update(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quantity is required"})
	}

	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	snap := s.Cart.UpdateQuantity(c.Request().Context(), c.Param("id"), *req.Quantity)
	return c.JSON(http.StatusOK, snap)
}

func (h *CartHandler) remove(c echo.Context) error {
	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.Cart.RemoveFromCart(c.Request().Context(), c.Param("id")))
}

func (h *CartHandler) clear(c echo.Context) error {
	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.Cart.ClearCart(c.Request().Context()))
}

func (h *CartHandler) visibility(c echo.Context) error {
	var req CartVisibilityRequest
	if err := c.Bind(&req); err != nil || req.Open == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "open is required"})
	}

	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.Cart.SetOpen(*req.Open))
}
