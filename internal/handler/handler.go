package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// middlewareが入れたセッションIDから状態を取る
func currentSession(c echo.Context, sessions *usecase.SessionManager) (*usecase.Session, error) {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return nil, usecase.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return sessions.Get(c.Request().Context(), sid), nil
}

// GET /health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
