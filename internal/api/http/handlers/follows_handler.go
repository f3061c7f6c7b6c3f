package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/litrevu/litrevu/internal/api/dto"
	"github.com/litrevu/litrevu/internal/auth"
	"github.com/litrevu/litrevu/internal/domain"
	"github.com/litrevu/litrevu/internal/service"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// FollowsHandler manages follow-graph endpoints.
type FollowsHandler struct {
	service *service.FollowService
}

// NewFollowsHandler constructs handler.
func NewFollowsHandler(followService *service.FollowService) *FollowsHandler {
	return &FollowsHandler{service: followService}
}

// Follow POST /follows.
func (h *FollowsHandler) Follow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.FollowRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" {
		return apperrors.NewValidationError("username required", nil)
	}

	follow, err := h.service.Follow(c.UserContext(), principal.User.ID, req.Username)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"id":               follow.ID,
		"followed_user_id": follow.FollowedID,
		"created_at":       follow.CreatedAt,
	}})
}

// Unfollow DELETE /follows/:userId.
func (h *FollowsHandler) Unfollow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Unfollow(c.UserContext(), principal.User.ID, c.Params("userId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List GET /follows returns who the caller follows and who follows them.
func (h *FollowsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	following, err := h.service.ListFollowing(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	followers, err := h.service.ListFollowers(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FollowListResponse{
		Following: userResponses(following),
		Followers: userResponses(followers),
	}})
}

func userResponses(users []domain.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	return out
}
