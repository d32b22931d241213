package application

import (
	"time"

	"studentgigs/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func KnownStatus(status Status) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

type Application struct {
	ID          common.UUID `json:"id"`
	JobID       common.UUID `json:"job_id"`
	ApplicantID common.UUID `json:"applicant_id"`
	CoverNote   string      `json:"cover_note,omitempty"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// AcceptedJob is the student-facing read of an accepted application joined
// with its job. HasCompletionRequest is derived from the job status alone.
type AcceptedJob struct {
	Application          Application `json:"application"`
	JobID                common.UUID `json:"job_id"`
	JobTitle             string      `json:"job_title"`
	JobStatus            string      `json:"job_status"`
	EmployerID           common.UUID `json:"employer_id"`
	EmployerName         string      `json:"employer_name"`
	HasCompletionRequest bool        `json:"has_completion_request"`
}
