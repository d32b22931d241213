package postgres

import (
	"context"
	"database/sql"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Stats(ctx context.Context) (*admin.Stats, error) {
	stats := &admin.Stats{
		JobsByStatus:         make(map[string]int),
		ApplicationsByStatus: make(map[string]int),
	}

	row := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM jobs),
		(SELECT COUNT(*) FROM applications)`)
	if err := row.Scan(&stats.TotalUsers, &stats.TotalJobs, &stats.TotalApplications); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load totals", err)
	}

	if err := r.countByStatus(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`, stats.JobsByStatus); err != nil {
		return nil, err
	}
	if err := r.countByStatus(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`, stats.ApplicationsByStatus); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *AdminRepository) countByStatus(ctx context.Context, query string, into map[string]int) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to load status counts", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return common.NewError(common.CodeInternal, "failed to scan status count", err)
		}
		into[status] = count
	}
	return nil
}
