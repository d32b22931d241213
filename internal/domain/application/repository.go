package application

import (
	"context"

	"studentgigs/internal/common"
)

type Repository interface {
	// Create inserts unconditionally; the unique (job_id, applicant_id)
	// constraint is the authority on duplicates and surfaces as a conflict
	// error. A prior existence check would be racy.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Application, error)
	ListAcceptedByApplicant(ctx context.Context, applicantID common.UUID) ([]AcceptedJob, error)
	FindAcceptedByJob(ctx context.Context, jobID common.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
	// Accept flips the application to accepted and, when the job is still
	// open, moves it to in_progress in the same transaction.
	Accept(ctx context.Context, id common.UUID) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
}
