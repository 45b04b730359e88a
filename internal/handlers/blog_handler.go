package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

const viewCookieTTL = 24 * time.Hour

// BlogHandler handles HTTP requests for blog posts
type BlogHandler struct {
	blog *services.BlogService
}

func NewBlogHandler(blog *services.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group, guards Guards) {
	g.GET("/blog", h.ListPublished)
	g.GET("/blog/:slug", h.GetBySlug)
	g.POST("/blog/:slug/view", h.RecordView)
	g.POST("/blog/:id/like", h.ToggleLike, guards.Required)
}

func (h *BlogHandler) RegisterAdminBlogRoutes(g *echo.Group, guards Guards) {
	admin := guards.Admin(auth.ActionManageBlog)

	g.GET("/blog", h.ListAll, guards.Required, admin)
	g.POST("/blog", h.CreatePost, guards.Required, admin)
	g.PUT("/blog/:id", h.UpdatePost, guards.Required, admin)
	g.DELETE("/blog/:id", h.DeletePost, guards.Required, admin)
}

// ListPublished returns a page of published posts (?page=&limit=)
func (h *BlogHandler) ListPublished(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit > 50 {
		limit = 50
	}

	result, err := h.blog.ListPublished(c.Request().Context(), page, limit)
	if err != nil {
		return fromService(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *BlogHandler) GetBySlug(c echo.Context) error {
	post, err := h.blog.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, post)
}

// RecordView counts a view at most once per browser per day.
func (h *BlogHandler) RecordView(c echo.Context) error {
	slug := c.Param("slug")
	name := "viewed_" + slug

	if _, err := c.Cookie(name); err == nil {
		return success(c, http.StatusOK, echo.Map{"counted": false})
	}

	if !h.blog.RecordView(c.Request().Context(), slug) {
		return success(c, http.StatusOK, echo.Map{"counted": false})
	}

	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "true",
		Path:     "/",
		MaxAge:   int(viewCookieTTL.Seconds()),
		HttpOnly: true,
	})
	return success(c, http.StatusOK, echo.Map{"counted": true})
}

func (h *BlogHandler) ToggleLike(c echo.Context) error {
	liked, err := h.blog.ToggleLike(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id"))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"liked": liked})
}

func (h *BlogHandler) ListAll(c echo.Context) error {
	posts, err := h.blog.ListAll(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, posts)
}

func (h *BlogHandler) CreatePost(c echo.Context) error {
	var req models.BlogPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.blog.Create(c.Request().Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusCreated, post)
}

func (h *BlogHandler) UpdatePost(c echo.Context) error {
	var req models.BlogPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.blog.Update(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id"), req)
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, post)
}

func (h *BlogHandler) DeletePost(c echo.Context) error {
	if err := h.blog.Delete(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}
