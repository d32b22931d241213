package app

import (
	"context"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/user"
)

type AdminService struct {
	stats admin.Repository
	users user.Repository
	jobs  job.Repository
}

func NewAdminService(stats admin.Repository, users user.Repository, jobs job.Repository) *AdminService {
	return &AdminService{stats: stats, users: users, jobs: jobs}
}

func (s *AdminService) Stats(ctx context.Context) (*admin.Stats, error) {
	return s.stats.Stats(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]user.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *AdminService) ListJobs(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.jobs.ListAll(ctx, limit, offset)
}

func (s *AdminService) DeleteUser(ctx context.Context, id, callerID common.UUID) error {
	if id == callerID {
		return common.NewError(common.CodeValidation, "admins cannot delete themselves", nil)
	}
	return s.users.Delete(ctx, id)
}

func (s *AdminService) DeleteJob(ctx context.Context, id common.UUID) error {
	return s.jobs.Delete(ctx, id)
}
