package postgres

import (
	"context"
	"database/sql"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/review"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv review.Review) (*review.Review, error) {
	rv.ID = common.NewUUID()
	rv.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO reviews (id, user_id, rating, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`, rv.ID, rv.UserID, rv.Rating, rv.Content, rv.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create review", err)
	}
	return &rv, nil
}

func (r *ReviewRepository) ListRecent(ctx context.Context, limit, offset int) ([]review.Review, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, rating, content, created_at
		FROM reviews ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list reviews", err)
	}
	defer rows.Close()
	var items []review.Review
	for rows.Next() {
		var rv review.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Rating, &rv.Content, &rv.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan review", err)
		}
		items = append(items, rv)
	}
	return items, nil
}
