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

// ReviewsHandler manages review endpoints.
type ReviewsHandler struct {
	service *service.TicketService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(ticketService *service.TicketService) *ReviewsHandler {
	return &ReviewsHandler{service: ticketService}
}

// CreateReview POST /tickets/:id/reviews.
func (h *ReviewsHandler) CreateReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.CreateReview(c.UserContext(), principal.User.ID, c.Params("id"), reviewInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reviewResponse(review)})
}

// UpdateReview PUT /reviews/:id.
func (h *ReviewsHandler) UpdateReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.UpdateReview(c.UserContext(), principal.User.ID, c.Params("id"), reviewInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponse(review)})
}

// DeleteReview DELETE /reviews/:id.
func (h *ReviewsHandler) DeleteReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteReview(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func reviewInput(req dto.ReviewRequest) service.ReviewInput {
	return service.ReviewInput{
		Rating:   req.Rating,
		Headline: req.Headline,
		Body:     req.Body,
	}
}

func reviewResponse(review *domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		TicketID:  review.TicketID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Headline:  review.Headline,
		Body:      review.Body,
		CreatedAt: review.CreatedAt,
	}
}
