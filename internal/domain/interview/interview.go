package interview

import (
	"context"
	"time"

	"studentgigs/internal/common"
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

func KnownStatus(status Status) bool {
	switch status {
	case StatusScheduled, StatusRescheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Active reports whether the interview still occupies its application's
// single active slot.
func Active(status Status) bool {
	return status == StatusScheduled || status == StatusRescheduled
}

type Interview struct {
	ID            common.UUID `json:"id"`
	ApplicationID common.UUID `json:"application_id"`
	JobID         common.UUID `json:"job_id"`
	EmployerID    common.UUID `json:"employer_id"`
	StudentID     common.UUID `json:"student_id"`
	ScheduledDate string      `json:"scheduled_date"`
	ScheduledTime string      `json:"scheduled_time"`
	Location      string      `json:"location,omitempty"`
	MeetingLink   string      `json:"meeting_link,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Upcoming carries the counterpart identity for whichever side is asking.
type Upcoming struct {
	Interview
	CounterpartID   common.UUID `json:"counterpart_id"`
	CounterpartName string      `json:"counterpart_name"`
	JobTitle        string      `json:"job_title"`
}

type Reschedule struct {
	ScheduledDate string
	ScheduledTime string
	Location      string
	MeetingLink   string
	Notes         string
}

type Repository interface {
	// Create checks for an existing active interview on the application and
	// inserts inside one transaction; an occupied slot fails validation.
	Create(ctx context.Context, iv Interview) (*Interview, error)
	GetByID(ctx context.Context, id common.UUID) (*Interview, error)
	Reschedule(ctx context.Context, id common.UUID, change Reschedule) (*Interview, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Interview, error)
	ListUpcoming(ctx context.Context, userID common.UUID) ([]Upcoming, error)
}
