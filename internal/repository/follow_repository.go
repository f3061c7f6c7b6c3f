package repository

import (
	"context"

	"github.com/litrevu/litrevu/internal/domain"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// FollowRepository encapsulates follow-edge persistence.
type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	// Delete removes the (follower, followed) edge and reports whether it
	// existed.
	Delete(ctx context.Context, followerID, followedID string) (bool, error)
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	// ListFollowedIDs returns the IDs of users the given user follows.
	ListFollowedIDs(ctx context.Context, followerID string) ([]string, error)
	// ListFollowing and ListFollowers are read projections over the edge set.
	ListFollowing(ctx context.Context, userID string) ([]domain.User, error)
	ListFollowers(ctx context.Context, userID string) ([]domain.User, error)
}

type followRepository struct {
	db DB
}

// NewFollowRepository instantiates repository.
func NewFollowRepository(db DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *domain.Follow) error {
	const query = `
        INSERT INTO user_follows (user_id, followed_user_id)
        VALUES ($1, $2)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		follow.FollowerID,
		follow.FollowedID,
	).Scan(&follow.ID, &follow.CreatedAt)
	// The unique constraint backs the application-level pre-check so two
	// concurrent follow requests cannot both land.
	if isUniqueViolation(err, "uq_user_follows") {
		return apperrors.ErrAlreadyFollowing
	}
	return err
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID string) (bool, error) {
	const query = `DELETE FROM user_follows WHERE user_id=$1 AND followed_user_id=$2`
	cmd, err := r.db.Exec(ctx, query, followerID, followedID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_follows WHERE user_id=$1 AND followed_user_id=$2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, followerID, followedID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *followRepository) ListFollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	const query = `SELECT followed_user_id FROM user_follows WHERE user_id=$1`
	rows, err := r.db.Query(ctx, query, followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumnsJoined + `
        FROM user_follows f
        JOIN users u ON u.id = f.followed_user_id
        WHERE f.user_id=$1
        ORDER BY u.username`
	return r.listUsers(ctx, query, userID)
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumnsJoined + `
        FROM user_follows f
        JOIN users u ON u.id = f.user_id
        WHERE f.followed_user_id=$1
        ORDER BY u.username`
	return r.listUsers(ctx, query, userID)
}

const userColumnsJoined = `u.id, u.username, u.email, u.password_hash, u.is_staff, u.is_superuser, u.profile_photo_key, u.created_at, u.updated_at`

func (r *followRepository) listUsers(ctx context.Context, query, arg string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.IsStaff,
			&user.IsSuperuser,
			&user.ProfilePhotoKey,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
