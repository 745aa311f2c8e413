package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /toasts のHTTP
type ToastHandler struct {
	sessions *usecase.SessionManager
}

// DI
func NewToastHandler(sessions *usecase.SessionManager) *ToastHandler {
	return &ToastHandler{sessions: sessions}
}

func (h *ToastHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/toasts", h.list)
	e.DELETE("/toasts/:id", h.dismiss)
}

func (h *ToastHandler) list(c echo.Context) error {
	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.Toasts.Toasts())
}

// 無いIDでも204（既に期限切れの可能性）
func (h *ToastHandler) dismiss(c echo.Context) error {
	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	s.Toasts.RemoveToast(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
