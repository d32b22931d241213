package app

import (
	"context"
	"strings"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/review"
)

type ReviewService struct {
	repo review.Repository
}

func NewReviewService(repo review.Repository) *ReviewService {
	return &ReviewService{repo: repo}
}

func (s *ReviewService) Create(ctx context.Context, rv review.Review) (*review.Review, error) {
	fields := map[string]string{}
	if rv.Rating < 1 || rv.Rating > 5 {
		fields["rating"] = "rating must be between 1 and 5"
	}
	rv.Content = strings.TrimSpace(rv.Content)
	if rv.Content == "" {
		fields["content"] = "content is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid review", fields)
	}
	return s.repo.Create(ctx, rv)
}

func (s *ReviewService) ListRecent(ctx context.Context, limit, offset int) ([]review.Review, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListRecent(ctx, limit, offset)
}
