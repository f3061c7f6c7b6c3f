package service

import (
	"context"
	"strings"

	"github.com/litrevu/litrevu/internal/domain"
	"github.com/litrevu/litrevu/internal/events"
	"github.com/litrevu/litrevu/internal/repository"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// TicketService is the mutation gateway for tickets and reviews. Every
// mutating operation takes the acting user and enforces authorship before
// touching the store; failed operations leave no partial state.
type TicketService struct {
	tickets    repository.TicketRepository
	reviews    repository.ReviewRepository
	tx         repository.TxManager
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	ReviewRepo repository.ReviewRepository
	TxManager  repository.TxManager
	Dispatcher events.Dispatcher
}

// TicketInput describes ticket creation/update payload.
type TicketInput struct {
	Title       string
	Description string
	ImageKey    *string
}

// ReviewInput describes review creation/update payload.
type ReviewInput struct {
	Rating   int
	Headline string
	Body     string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		reviews:    deps.ReviewRepo,
		tx:         deps.TxManager,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a review request owned by the acting user.
func (s *TicketService) CreateTicket(ctx context.Context, actorID string, input TicketInput) (*domain.Ticket, error) {
	if err := domain.ValidateTicketFields(input.Title, input.Description); err != nil {
		return nil, err
	}
	ticket := newTicket(actorID, input)
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventTicketCreated,
		ActorID: actorID,
		Payload: events.TicketPayload{TicketID: ticket.ID, Title: ticket.Title},
	})
	return ticket, nil
}

// UpdateTicket edits a ticket's fields. Ownership never changes.
func (s *TicketService) UpdateTicket(ctx context.Context, actorID, ticketID string, input TicketInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != actorID {
		return nil, apperrors.ErrNotAuthorized
	}
	if err := domain.ValidateTicketFields(input.Title, input.Description); err != nil {
		return nil, err
	}

	ticket.Title = strings.TrimSpace(input.Title)
	ticket.Description = strings.TrimSpace(input.Description)
	if input.ImageKey != nil {
		ticket.ImageKey = input.ImageKey
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventTicketUpdated,
		ActorID: actorID,
		Payload: events.TicketPayload{TicketID: ticket.ID, Title: ticket.Title},
	})
	return ticket, nil
}

// DeleteTicket removes a ticket; all reviews referencing it cascade away
// with it.
func (s *TicketService) DeleteTicket(ctx context.Context, actorID, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.UserID != actorID {
		return apperrors.ErrNotAuthorized
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventTicketDeleted,
		ActorID: actorID,
		Payload: events.TicketPayload{TicketID: ticket.ID, Title: ticket.Title},
	})
	return nil
}

// CreateReview publishes a review in response to an existing ticket. A user
// reviews a given ticket at most once; the ticket's own author may review it.
func (s *TicketService) CreateReview(ctx context.Context, actorID, ticketID string, input ReviewInput) (*domain.Review, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateReviewFields(input.Rating, input.Headline, input.Body); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForTicketAndUser(ctx, ticket.ID, actorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := newReview(actorID, ticket.ID, input)
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventReviewCreated,
		ActorID: actorID,
		Payload: events.ReviewPayload{
			ReviewID: review.ID,
			TicketID: review.TicketID,
			Rating:   review.Rating,
			Headline: review.Headline,
		},
	})
	return review, nil
}

// UpdateReview edits a review's fields. Only the review's author may edit.
func (s *TicketService) UpdateReview(ctx context.Context, actorID, reviewID string, input ReviewInput) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID {
		return nil, apperrors.ErrNotAuthorized
	}
	if err := domain.ValidateReviewFields(input.Rating, input.Headline, input.Body); err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Headline = strings.TrimSpace(input.Headline)
	review.Body = strings.TrimSpace(input.Body)
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review. Only the review's author may delete.
func (s *TicketService) DeleteReview(ctx context.Context, actorID, reviewID string) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actorID {
		return apperrors.ErrNotAuthorized
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventReviewDeleted,
		ActorID: actorID,
		Payload: events.ReviewPayload{ReviewID: review.ID, TicketID: review.TicketID},
	})
	return nil
}

// CreateTicketAndReview creates a ticket and the actor's review of it in one
// transaction: if the review insert fails, the ticket rolls back with it.
func (s *TicketService) CreateTicketAndReview(ctx context.Context, actorID string, ticketInput TicketInput, reviewInput ReviewInput) (*domain.Ticket, *domain.Review, error) {
	if err := domain.ValidateTicketFields(ticketInput.Title, ticketInput.Description); err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateReviewFields(reviewInput.Rating, reviewInput.Headline, reviewInput.Body); err != nil {
		return nil, nil, err
	}

	ticket := newTicket(actorID, ticketInput)
	var review *domain.Review
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Tickets.Create(ctx, ticket); err != nil {
			return err
		}
		review = newReview(actorID, ticket.ID, reviewInput)
		return r.Reviews.Create(ctx, review)
	})
	if err != nil {
		return nil, nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventTicketCreated,
		ActorID: actorID,
		Payload: events.TicketPayload{TicketID: ticket.ID, Title: ticket.Title},
	})
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventReviewCreated,
		ActorID: actorID,
		Payload: events.ReviewPayload{
			ReviewID: review.ID,
			TicketID: review.TicketID,
			Rating:   review.Rating,
			Headline: review.Headline,
		},
	})
	return ticket, review, nil
}

func newTicket(actorID string, input TicketInput) *domain.Ticket {
	return &domain.Ticket{
		UserID:      actorID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageKey:    input.ImageKey,
	}
}

func newReview(actorID, ticketID string, input ReviewInput) *domain.Review {
	return &domain.Review{
		TicketID: ticketID,
		UserID:   actorID,
		Rating:   input.Rating,
		Headline: strings.TrimSpace(input.Headline),
		Body:     strings.TrimSpace(input.Body),
	}
}
