package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, university, degree, bio, skills, portfolio, created_at, updated_at
		FROM student_profiles WHERE user_id = $1`, userID)
	var p profile.StudentProfile
	if err := row.Scan(&p.UserID, &p.University, &p.Degree, &p.Bio, pq.Array(&p.Skills), &p.Portfolio, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load profile", err)
	}
	p.Normalize()
	return &p, nil
}

func (r *StudentProfileRepository) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	p.Normalize()
	_, err := r.db.ExecContext(ctx, `INSERT INTO student_profiles (user_id, university, degree, bio, skills, portfolio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id) DO UPDATE SET university = $2, degree = $3, bio = $4, skills = $5, portfolio = $6, updated_at = $7`,
		p.UserID, p.University, p.Degree, p.Bio, pq.Array(p.Skills), p.Portfolio, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}
