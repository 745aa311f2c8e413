package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout のHTTP
type CheckoutHandler struct {
	sessions *usecase.SessionManager
}

// DI
func NewCheckoutHandler(sessions *usecase.SessionManager) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

type SetCheckoutFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/checkout", h.view)
	e.PATCH("/checkout", h.setField)
	e.POST("/checkout", h.submit)
}

func (h *CheckoutHandler) view(c echo.Context) error {
	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.Checkout.View())
}

func (h *CheckoutHandler) setField(c echo.Context) error {
	var req SetCheckoutFieldRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.Checkout.SetField(req.Field, req.Value); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.Checkout.View())
}

func (h *CheckoutHandler) submit(c echo.Context) error {
	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}

	res, err := s.Checkout.Submit(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if len(res.Errors) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, res)
	}
	return c.JSON(http.StatusOK, res)
}
