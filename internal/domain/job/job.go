package job

import (
	"time"

	"studentgigs/internal/common"
)

type Status string

const (
	StatusDraft             Status = "draft"
	StatusOpen              Status = "open"
	StatusInProgress        Status = "in_progress"
	StatusPendingCompletion Status = "pending_completion"
	StatusCompleted         Status = "completed"
)

func KnownStatus(status Status) bool {
	switch status {
	case StatusDraft, StatusOpen, StatusInProgress, StatusPendingCompletion, StatusCompleted:
		return true
	default:
		return false
	}
}

type Job struct {
	ID             common.UUID `json:"id"`
	OwnerID        common.UUID `json:"owner_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Location       string      `json:"location"`
	PayAmount      int         `json:"pay_amount"`
	PayPeriod      string      `json:"pay_period"`
	Tags           []string    `json:"tags"`
	RequiredSkills []string    `json:"required_skills"`
	Status         Status      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Normalize keeps array fields encoding as [] instead of null.
func (j *Job) Normalize() {
	if j.Tags == nil {
		j.Tags = []string{}
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
}

type Filter struct {
	Query  string
	Tag    string
	Limit  int
	Offset int
}
