package profile

import (
	"context"
	"time"

	"studentgigs/internal/common"
)

type StudentProfile struct {
	UserID     common.UUID `json:"user_id"`
	University string      `json:"university,omitempty"`
	Degree     string      `json:"degree,omitempty"`
	Bio        string      `json:"bio,omitempty"`
	Skills     []string    `json:"skills"`
	Portfolio  string      `json:"portfolio,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (p *StudentProfile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
}

type StudentRepository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
	Upsert(ctx context.Context, p StudentProfile) (*StudentProfile, error)
}
