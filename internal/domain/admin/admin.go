package admin

import "context"

// Stats is the dashboard aggregate; pure read side, no independent logic.
type Stats struct {
	TotalUsers           int            `json:"total_users"`
	TotalJobs            int            `json:"total_jobs"`
	TotalApplications    int            `json:"total_applications"`
	JobsByStatus         map[string]int `json:"jobs_by_status"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
}

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
}
