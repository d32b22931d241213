package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/interview"
)

type InterviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `id, application_id, job_id, employer_id, student_id, scheduled_date, scheduled_time, location, meeting_link, notes, status, created_at, updated_at`

func (r *InterviewRepository) Create(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	iv.ID = common.NewUUID()
	now := time.Now().UTC()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		var active int
		row := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM interviews WHERE application_id = $1 AND status IN ($2, $3)`,
			iv.ApplicationID, interview.StatusScheduled, interview.StatusRescheduled)
		if err := row.Scan(&active); err != nil {
			return common.NewError(common.CodeInternal, "failed to check active interviews", err)
		}
		if active > 0 {
			return common.NewError(common.CodeValidation, "an active interview already exists for this application", nil)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO interviews (`+interviewColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			iv.ID, iv.ApplicationID, iv.JobID, iv.EmployerID, iv.StudentID, iv.ScheduledDate, iv.ScheduledTime,
			iv.Location, iv.MeetingLink, iv.Notes, iv.Status, iv.CreatedAt, iv.UpdatedAt); err != nil {
			return common.NewError(common.CodeInternal, "failed to create interview", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id common.UUID) (*interview.Interview, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	var iv interview.Interview
	if err := scanInterview(row.Scan, &iv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "interview not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load interview", err)
	}
	return &iv, nil
}

func (r *InterviewRepository) Reschedule(ctx context.Context, id common.UUID, change interview.Reschedule) (*interview.Interview, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE interviews SET scheduled_date = $1, scheduled_time = $2, location = $3, meeting_link = $4, notes = $5, status = $6, updated_at = $7
		WHERE id = $8`,
		change.ScheduledDate, change.ScheduledTime, change.Location, change.MeetingLink, change.Notes,
		interview.StatusRescheduled, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to reschedule interview", err)
	}
	return r.GetByID(ctx, id)
}

func (r *InterviewRepository) UpdateStatus(ctx context.Context, id common.UUID, status interview.Status) (*interview.Interview, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE interviews SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update interview", err)
	}
	return r.GetByID(ctx, id)
}

func (r *InterviewRepository) ListUpcoming(ctx context.Context, userID common.UUID) ([]interview.Upcoming, error) {
	// The counterpart columns flip depending on which side the caller is.
	rows, err := r.db.QueryContext(ctx, `SELECT i.id, i.application_id, i.job_id, i.employer_id, i.student_id,
			i.scheduled_date, i.scheduled_time, i.location, i.meeting_link, i.notes, i.status, i.created_at, i.updated_at,
			CASE WHEN i.employer_id = $1 THEN i.student_id ELSE i.employer_id END,
			CASE WHEN i.employer_id = $1 THEN s.name ELSE e.name END,
			j.title
		FROM interviews i
		JOIN users e ON e.id = i.employer_id
		JOIN users s ON s.id = i.student_id
		JOIN jobs j ON j.id = i.job_id
		WHERE (i.employer_id = $1 OR i.student_id = $1) AND i.status IN ($2, $3)
		ORDER BY i.scheduled_date ASC, i.scheduled_time ASC`,
		userID, interview.StatusScheduled, interview.StatusRescheduled)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list upcoming interviews", err)
	}
	defer rows.Close()
	var items []interview.Upcoming
	for rows.Next() {
		var item interview.Upcoming
		if err := rows.Scan(&item.ID, &item.ApplicationID, &item.JobID, &item.EmployerID, &item.StudentID,
			&item.ScheduledDate, &item.ScheduledTime, &item.Location, &item.MeetingLink, &item.Notes,
			&item.Status, &item.CreatedAt, &item.UpdatedAt,
			&item.CounterpartID, &item.CounterpartName, &item.JobTitle); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan interview", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func scanInterview(scan func(dest ...any) error, iv *interview.Interview) error {
	return scan(&iv.ID, &iv.ApplicationID, &iv.JobID, &iv.EmployerID, &iv.StudentID,
		&iv.ScheduledDate, &iv.ScheduledTime, &iv.Location, &iv.MeetingLink, &iv.Notes,
		&iv.Status, &iv.CreatedAt, &iv.UpdatedAt)
}
