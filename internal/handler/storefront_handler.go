package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /blog, /gallery, /contact, /faq
type StorefrontHandler struct {
	sessions *usecase.SessionManager
	blog     *usecase.BlogUsecase
	gallery  *usecase.GalleryUsecase
	contact  *usecase.ContactUsecase
}

// DI
func NewStorefrontHandler(
	sessions *usecase.SessionManager,
	blog *usecase.BlogUsecase,
	gallery *usecase.GalleryUsecase,
	contact *usecase.ContactUsecase,
) *StorefrontHandler {
	return &StorefrontHandler{sessions: sessions, blog: blog, gallery: gallery, contact: contact}
}

func (h *StorefrontHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/blog", h.listPosts)
	e.GET("/blog/:id", h.getPost)
	e.GET("/gallery", h.listGallery)
	e.POST("/contact", h.submitContact)
	e.GET("/faq", h.faq)
}

func (h *StorefrontHandler) listPosts(c echo.Context) error {
	out, err := h.blog.ListPosts(c.Request().Context(), c.QueryParam("q"), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StorefrontHandler) getPost(c echo.Context) error {
	out, err := h.blog.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StorefrontHandler) listGallery(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gallery.List(c.Request().Context()))
}

func (h *StorefrontHandler) submitContact(c echo.Context) error {
	var req model.ContactMessage
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	s, err := currentSession(c, h.sessions)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.contact.Submit(c.Request().Context(), s.Toasts, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *StorefrontHandler) faq(c echo.Context) error {
	return c.JSON(http.StatusOK, usecase.FAQ())
}
