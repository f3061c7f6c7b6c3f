package service

import (
	"context"

	"github.com/litrevu/litrevu/internal/domain"
	"github.com/litrevu/litrevu/internal/repository"
)

// FeedService computes the personalized timeline for a viewer.
type FeedService struct {
	tickets repository.TicketRepository
	reviews repository.ReviewRepository
	follows repository.FollowRepository
}

// FeedDependencies bundles repositories for the feed service.
type FeedDependencies struct {
	TicketRepo repository.TicketRepository
	ReviewRepo repository.ReviewRepository
	FollowRepo repository.FollowRepository
}

// NewFeedService constructs the service.
func NewFeedService(deps FeedDependencies) *FeedService {
	return &FeedService{
		tickets: deps.TicketRepo,
		reviews: deps.ReviewRepo,
		follows: deps.FollowRepo,
	}
}

// ComputeFeed returns the merged reverse-chronological timeline for the
// viewer: their own posts, posts by followed users, and reviews answering
// the viewer's own tickets. A user with no posts and no follows gets an
// empty feed, not an error.
func (s *FeedService) ComputeFeed(ctx context.Context, viewerID string) ([]domain.FeedItem, error) {
	followedIDs, err := s.follows.ListFollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.tickets.ListVisible(ctx, viewerID, followedIDs)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListVisible(ctx, viewerID, followedIDs)
	if err != nil {
		return nil, err
	}

	answered, err := s.answeredTickets(ctx, tickets)
	if err != nil {
		return nil, err
	}
	return domain.MergeFeed(viewerID, tickets, reviews, answered), nil
}

// ComputeOwnPosts returns the same merged timeline restricted to posts the
// user authored.
func (s *FeedService) ComputeOwnPosts(ctx context.Context, userID string) ([]domain.FeedItem, error) {
	tickets, err := s.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	answered, err := s.answeredTickets(ctx, tickets)
	if err != nil {
		return nil, err
	}
	return domain.MergeFeed(userID, tickets, reviews, answered), nil
}

func (s *FeedService) answeredTickets(ctx context.Context, tickets []domain.Ticket) (map[string]bool, error) {
	ids := make([]string, 0, len(tickets))
	for i := range tickets {
		ids = append(ids, tickets[i].ID)
	}
	return s.tickets.IDsWithReviews(ctx, ids)
}
