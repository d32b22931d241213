package notification

import (
	"context"
	"time"

	"studentgigs/internal/common"
)

type Type string

const (
	TypeApplicationReceived  Type = "application_received"
	TypeApplicationAccepted  Type = "application_accepted"
	TypeApplicationRejected  Type = "application_rejected"
	TypeCompletionRequested  Type = "completion_requested"
	TypeInterviewScheduled   Type = "interview_scheduled"
	TypeInterviewRescheduled Type = "interview_rescheduled"
)

type Notification struct {
	ID          common.UUID `json:"id"`
	UserID      common.UUID `json:"user_id"`
	Type        Type        `json:"type"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	RelatedID   common.UUID `json:"related_id,omitempty"`
	RelatedType string      `json:"related_type,omitempty"`
	IsRead      bool        `json:"is_read"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, n Notification) (*Notification, error)
	ListByUser(ctx context.Context, userID common.UUID, limit, offset int) ([]Notification, error)
	UnreadCount(ctx context.Context, userID common.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID common.UUID) error
	MarkAllRead(ctx context.Context, userID common.UUID) error
}
