package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/pkg/imagehost"
	"go.uber.org/zap"
)

const maxUploadSize = 5 << 20

// UploadHandler forwards admin image uploads to the image host.
type UploadHandler struct {
	uploader imagehost.Uploader
	logger   *zap.Logger
}

func NewUploadHandler(uploader imagehost.Uploader, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, logger: logger}
}

func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group, guards Guards) {
	g.POST("/uploads", h.Upload, guards.Required, guards.Admin(auth.ActionUploadImages))
}

// Upload expects a multipart "file" field holding an image
func (h *UploadHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if header.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds 5MB")
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "only images can be uploaded")
	}

	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request().Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, imagehost.ErrNotConfigured) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		h.logger.Error("image upload failed", zap.String("filename", header.Filename), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Upload failed"})
	}
	return success(c, http.StatusCreated, echo.Map{"url": url})
}
