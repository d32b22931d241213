package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, applicant_id, cover_note, status, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.JobID, app.ApplicantID, app.CoverNote, app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "you have already applied to this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`, applicantID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicant applications", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *ApplicationRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.applicant_id, a.cover_note, a.status, a.created_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.owner_id = $1
		ORDER BY a.created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list received applications", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *ApplicationRepository) ListAcceptedByApplicant(ctx context.Context, applicantID common.UUID) ([]application.AcceptedJob, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.applicant_id, a.cover_note, a.status, a.created_at, a.updated_at,
			j.id, j.title, j.status, u.id, u.name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = j.owner_id
		WHERE a.applicant_id = $1 AND a.status = $2
		ORDER BY a.updated_at DESC`, applicantID, application.StatusAccepted)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list accepted jobs", err)
	}
	defer rows.Close()
	var items []application.AcceptedJob
	for rows.Next() {
		var item application.AcceptedJob
		if err := rows.Scan(&item.Application.ID, &item.Application.JobID, &item.Application.ApplicantID,
			&item.Application.CoverNote, &item.Application.Status, &item.Application.CreatedAt, &item.Application.UpdatedAt,
			&item.JobID, &item.JobTitle, &item.JobStatus, &item.EmployerID, &item.EmployerName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan accepted job", err)
		}
		item.HasCompletionRequest = item.JobStatus == string(job.StatusPendingCompletion)
		items = append(items, item)
	}
	return items, nil
}

func (r *ApplicationRepository) FindAcceptedByJob(ctx context.Context, jobID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND status = $2`, jobID, application.StatusAccepted)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Accept(ctx context.Context, id common.UUID) (*application.Application, error) {
	var accepted *application.Application
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		row := tx.QueryRowContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3
			RETURNING `+applicationColumns, application.StatusAccepted, now, id)
		app, err := scanApplicationRow(row)
		if err != nil {
			return err
		}
		// Acceptance moves an open job into progress; a job already past
		// open keeps its status.
		if _, err := tx.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
			job.StatusInProgress, now, app.JobID, job.StatusOpen); err != nil {
			return common.NewError(common.CodeInternal, "failed to update job status", err)
		}
		accepted = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return nil
}

func scanApplicationRow(row *sql.Row) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.CoverNote, &app.Status, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func scanApplications(rows *sql.Rows) ([]application.Application, error) {
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.CoverNote, &app.Status, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	return items, nil
}
