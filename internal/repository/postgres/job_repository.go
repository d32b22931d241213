package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/lib/pq"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, owner_id, title, description, location, pay_amount, pay_period, tags, required_skills, status, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	j.Normalize()
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		j.ID, j.OwnerID, j.Title, j.Description, j.Location, j.PayAmount, j.PayPeriod,
		pq.Array(j.Tags), pq.Array(j.RequiredSkills), j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	j.Normalize()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, location = $3, pay_amount = $4, pay_period = $5, tags = $6, required_skills = $7, status = $8, updated_at = $9
		WHERE id = $10 AND owner_id = $11`,
		j.Title, j.Description, j.Location, j.PayAmount, j.PayPeriod, pq.Array(j.Tags), pq.Array(j.RequiredSkills), j.Status, j.UpdatedAt, j.ID, j.OwnerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJobRow(row)
}

func (r *JobRepository) ListPublic(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status <> $1`
	args := []any{job.StatusDraft}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += ` AND (title ILIKE $2 OR description ILIKE $2)`
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		query += ` AND $` + strconv.Itoa(len(args)) + ` = ANY(tags)`
	}
	args = append(args, filter.Limit, filter.Offset)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *JobRepository) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list owner jobs", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return nil
}

func (r *JobRepository) RequestCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*job.Job, error) {
	return r.transition(ctx, jobID, ownerID, applicantID, message, job.StatusInProgress, job.StatusPendingCompletion)
}

func (r *JobRepository) AcceptCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*job.Job, error) {
	return r.transition(ctx, jobID, ownerID, applicantID, message, job.StatusPendingCompletion, job.StatusCompleted)
}

func (r *JobRepository) DenyCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*job.Job, error) {
	return r.transition(ctx, jobID, ownerID, applicantID, message, job.StatusPendingCompletion, job.StatusInProgress)
}

// transition performs the guarded status write and appends the announcement
// to the owner/applicant conversation atomically. The status guard in the
// WHERE clause closes the race between the service's precondition read and
// the write.
func (r *JobRepository) transition(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string, from, to job.Status) (*job.Job, error) {
	var updated *job.Job
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
			to, time.Now().UTC(), jobID, from)
		if err != nil {
			return common.NewError(common.CodeInternal, "failed to update job status", err)
		}
		rows, err := result.RowsAffected()
		if err == nil && rows == 0 {
			return common.NewError(common.CodeValidation, "job is not in a state that allows this transition", nil)
		}
		conversationID, err := findOrCreateConversationTx(ctx, tx, ownerID, applicantID, &jobID)
		if err != nil {
			return err
		}
		var sender common.UUID
		if to == job.StatusPendingCompletion {
			sender = ownerID
		} else {
			sender = applicantID
		}
		if err := insertMessageTx(ctx, tx, conversationID, sender, message); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
		updated, err = scanJobRow(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanJobRow(row *sql.Row) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Description, &j.Location, &j.PayAmount, &j.PayPeriod,
		pq.Array(&j.Tags), pq.Array(&j.RequiredSkills), &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	j.Normalize()
	return &j, nil
}

func scanJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Description, &j.Location, &j.PayAmount, &j.PayPeriod,
			pq.Array(&j.Tags), pq.Array(&j.RequiredSkills), &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		j.Normalize()
		items = append(items, j)
	}
	return items, nil
}
