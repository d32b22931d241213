package postgres

import (
	"context"
	"database/sql"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/job"
)

type SavedJobRepository struct {
	db *sql.DB
}

func NewSavedJobRepository(db *sql.DB) *SavedJobRepository {
	return &SavedJobRepository{db: db}
}

func (r *SavedJobRepository) Save(ctx context.Context, userID, jobID common.UUID) error {
	// Saving twice is a no-op, not an error.
	_, err := r.db.ExecContext(ctx, `INSERT INTO saved_jobs (user_id, job_id, created_at)
		VALUES ($1, $2, $3) ON CONFLICT (user_id, job_id) DO NOTHING`, userID, jobID, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to save job", err)
	}
	return nil
}

func (r *SavedJobRepository) Unsave(ctx context.Context, userID, jobID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to unsave job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "saved job not found", sql.ErrNoRows)
	}
	return nil
}

func (r *SavedJobRepository) ListByUser(ctx context.Context, userID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT j.id, j.owner_id, j.title, j.description, j.location, j.pay_amount, j.pay_period, j.tags, j.required_skills, j.status, j.created_at, j.updated_at
		FROM saved_jobs s
		JOIN jobs j ON j.id = s.job_id
		WHERE s.user_id = $1 AND j.status <> $2
		ORDER BY s.created_at DESC`, userID, job.StatusDraft)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list saved jobs", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}
