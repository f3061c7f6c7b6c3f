package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litrevu/litrevu/internal/api/dto"
	"github.com/litrevu/litrevu/internal/auth"
	"github.com/litrevu/litrevu/internal/domain"
	"github.com/litrevu/litrevu/internal/service"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// FeedHandler serves the aggregated timeline endpoints.
type FeedHandler struct {
	service *service.FeedService
}

// NewFeedHandler constructs handler.
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{service: feedService}
}

// GetFeed GET /feed returns the viewer's merged timeline.
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	items, err := h.service.ComputeFeed(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feedResponses(items)})
}

// GetOwnPosts GET /posts returns only the caller's tickets and reviews.
func (h *FeedHandler) GetOwnPosts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	items, err := h.service.ComputeOwnPosts(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feedResponses(items)})
}

func feedResponses(items []domain.FeedItem) []dto.FeedItemResponse {
	out := make([]dto.FeedItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		resp := dto.FeedItemResponse{
			Kind:  string(item.Kind),
			IsOwn: item.IsOwn,
		}
		switch item.Kind {
		case domain.FeedItemTicket:
			ticket := ticketResponse(item.Ticket)
			resp.Ticket = &ticket
			answered := item.HasResponse
			resp.HasResponse = &answered
		case domain.FeedItemReview:
			review := reviewResponse(item.Review)
			resp.Review = &review
		}
		out = append(out, resp)
	}
	return out
}
