package review

import (
	"context"
	"time"

	"studentgigs/internal/common"
)

type Review struct {
	ID        common.UUID `json:"id"`
	UserID    common.UUID `json:"user_id"`
	Rating    int         `json:"rating"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, r Review) (*Review, error)
	ListRecent(ctx context.Context, limit, offset int) ([]Review, error)
}
