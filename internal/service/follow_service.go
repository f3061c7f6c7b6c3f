package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/litrevu/litrevu/internal/domain"
	"github.com/litrevu/litrevu/internal/events"
	"github.com/litrevu/litrevu/internal/repository"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// FollowService manages the follow graph.
type FollowService struct {
	users      repository.UserRepository
	follows    repository.FollowRepository
	dispatcher events.Dispatcher
}

// FollowDependencies bundles repositories for the follow service.
type FollowDependencies struct {
	UserRepo   repository.UserRepository
	FollowRepo repository.FollowRepository
	Dispatcher events.Dispatcher
}

// NewFollowService constructs the service.
func NewFollowService(deps FollowDependencies) *FollowService {
	return &FollowService{
		users:      deps.UserRepo,
		follows:    deps.FollowRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Follow creates an edge from the actor to the user named by
// targetUsername. Validation order: the target must exist, must not be the
// actor, and must not already be followed. No fan-out limit is enforced.
func (s *FollowService) Follow(ctx context.Context, actorID, targetUsername string) (*domain.Follow, error) {
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if target.ID == actorID {
		return nil, apperrors.ErrSelfFollow
	}

	exists, err := s.follows.Exists(ctx, actorID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyFollowing
	}

	follow := &domain.Follow{
		FollowerID: actorID,
		FollowedID: target.ID,
	}
	if err := s.follows.Create(ctx, follow); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventUserFollowed,
		ActorID: actorID,
		Payload: events.FollowPayload{FollowedUserID: target.ID},
	})
	return follow, nil
}

// Unfollow removes the edge from the actor to the target user.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID string) error {
	deleted, err := s.follows.Delete(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrFollowNotFound
	}
	return nil
}

// ListFollowing returns the users the given user follows.
func (s *FollowService) ListFollowing(ctx context.Context, userID string) ([]domain.User, error) {
	return s.follows.ListFollowing(ctx, userID)
}

// ListFollowers returns the users following the given user.
func (s *FollowService) ListFollowers(ctx context.Context, userID string) ([]domain.User, error) {
	return s.follows.ListFollowers(ctx, userID)
}
