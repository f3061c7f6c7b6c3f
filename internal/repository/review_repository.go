package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/litrevu/litrevu/internal/domain"
	apperrors "github.com/litrevu/litrevu/pkg/util/errorutil"
)

// ReviewRepository encapsulates review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)
	// ListVisible returns reviews authored by the viewer, by any followed
	// user, or answering one of the viewer's own tickets.
	ListVisible(ctx context.Context, viewerID string, followedIDs []string) ([]domain.Review, error)
	ExistsForTicketAndUser(ctx context.Context, ticketID, userID string) (bool, error)
}

type reviewRepository struct {
	db DB
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, ticket_id, user_id, rating, headline, body, created_at`

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (ticket_id, user_id, rating, headline, body)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		review.TicketID,
		review.UserID,
		review.Rating,
		review.Headline,
		review.Body,
	).Scan(&review.ID, &review.CreatedAt)
	// The unique constraint backs the application-level pre-check so two
	// concurrent submissions cannot both land.
	if isUniqueViolation(err, "uq_reviews_ticket_user") {
		return apperrors.ErrDuplicateReview
	}
	return err
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	// ticket_id, user_id and created_at are immutable.
	const query = `
        UPDATE reviews SET rating=$1, headline=$2, body=$3
        WHERE id=$4`
	cmd, err := r.db.Exec(ctx, query,
		review.Rating,
		review.Headline,
		review.Body,
		review.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id=$1`, id).Scan(
		&review.ID,
		&review.TicketID,
		&review.UserID,
		&review.Rating,
		&review.Headline,
		&review.Body,
		&review.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *reviewRepository) ListVisible(ctx context.Context, viewerID string, followedIDs []string) ([]domain.Review, error) {
	const query = `
        SELECT r.id, r.ticket_id, r.user_id, r.rating, r.headline, r.body, r.created_at
        FROM reviews r
        JOIN tickets t ON t.id = r.ticket_id
        WHERE r.user_id=$1 OR r.user_id = ANY($2) OR t.user_id=$1
        ORDER BY r.created_at DESC`
	rows, err := r.db.Query(ctx, query, viewerID, followedIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *reviewRepository) ExistsForTicketAndUser(ctx context.Context, ticketID, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reviews WHERE ticket_id=$1 AND user_id=$2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, ticketID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanReviews(rows pgx.Rows) ([]domain.Review, error) {
	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.TicketID,
			&review.UserID,
			&review.Rating,
			&review.Headline,
			&review.Body,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
