package job

import (
	"context"

	"studentgigs/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListPublic(ctx context.Context, filter Filter) ([]Job, error)
	// ListAll ignores the draft filter; reserved for the admin read side.
	ListAll(ctx context.Context, limit, offset int) ([]Job, error)
	ListByOwner(ctx context.Context, ownerID common.UUID) ([]Job, error)
	Delete(ctx context.Context, id common.UUID) error

	// Lifecycle transitions. Each runs the status write and its conversation
	// message in one transaction so a crash cannot separate them.
	RequestCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*Job, error)
	AcceptCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*Job, error)
	DenyCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*Job, error)
}

type SavedRepository interface {
	Save(ctx context.Context, userID, jobID common.UUID) error
	Unsave(ctx context.Context, userID, jobID common.UUID) error
	ListByUser(ctx context.Context, userID common.UUID) ([]Job, error)
}
