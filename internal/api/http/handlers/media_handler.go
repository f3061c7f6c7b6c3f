package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/litrevu/litrevu/internal/auth"
	"github.com/litrevu/litrevu/internal/service"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// MediaHandler accepts image uploads and returns storage keys that can be
// attached to tickets or profiles.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler constructs handler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload POST /media stores a multipart file under the caller's namespace.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' required", nil)
	}

	src, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer src.Close()

	key, err := h.media.Store(principal.User.ID, header.Filename, header.Size, src)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"key": key,
		"url": "/media/" + key,
	}})
}
