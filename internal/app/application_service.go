package app

import (
	"context"
	"strings"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/notification"
)

type ApplicationService struct {
	repo     application.Repository
	jobs     job.Repository
	notifier Notifier
}

func NewApplicationService(repo application.Repository, jobs job.Repository, notifier Notifier) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, notifier: notifier}
}

// Apply creates a pending application. Duplicate detection is left entirely
// to the store's unique constraint; a prior lookup could not serialise two
// concurrent applies.
func (s *ApplicationService) Apply(ctx context.Context, jobID, applicantID common.UUID, coverNote string) (*application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status == job.StatusDraft && j.OwnerID != applicantID {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	if j.OwnerID == applicantID {
		return nil, common.NewError(common.CodeValidation, "you cannot apply to your own job", nil)
	}
	created, err := s.repo.Create(ctx, application.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		CoverNote:   strings.TrimSpace(coverNote),
		Status:      application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Dispatch(ctx, notification.Notification{
		UserID:      j.OwnerID,
		Type:        notification.TypeApplicationReceived,
		Title:       "New application",
		Body:        "Someone applied to \"" + j.Title + "\".",
		RelatedID:   created.ID,
		RelatedType: "application",
	})
	return created, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID common.UUID, status application.Status, callerID common.UUID) (*application.Application, error) {
	status = application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !application.KnownStatus(status) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, accepted, or rejected"})
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if j.OwnerID != callerID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another employer", nil)
	}

	var updated *application.Application
	if status == application.StatusAccepted {
		// Acceptance also moves an open job into progress, atomically.
		updated, err = s.repo.Accept(ctx, applicationID)
	} else {
		updated, err = s.repo.UpdateStatus(ctx, applicationID, status)
	}
	if err != nil {
		return nil, err
	}

	switch status {
	case application.StatusAccepted:
		s.notifier.Dispatch(ctx, notification.Notification{
			UserID:      app.ApplicantID,
			Type:        notification.TypeApplicationAccepted,
			Title:       "Application accepted",
			Body:        "Your application for \"" + j.Title + "\" was accepted.",
			RelatedID:   app.ID,
			RelatedType: "application",
		})
	case application.StatusRejected:
		s.notifier.Dispatch(ctx, notification.Notification{
			UserID:      app.ApplicantID,
			Type:        notification.TypeApplicationRejected,
			Title:       "Application rejected",
			Body:        "Your application for \"" + j.Title + "\" was rejected.",
			RelatedID:   app.ID,
			RelatedType: "application",
		})
	}
	return updated, nil
}

// Withdraw hard-deletes the application; withdrawal is not a status.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, callerID common.UUID) error {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.ApplicantID != callerID {
		return common.NewError(common.CodeForbidden, "only the applicant may withdraw an application", nil)
	}
	return s.repo.Delete(ctx, applicationID)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID, callerID common.UUID) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.OwnerID != callerID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *ApplicationService) ListReceived(ctx context.Context, ownerID common.UUID) ([]application.Application, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *ApplicationService) ListMine(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	return s.repo.ListByApplicant(ctx, applicantID)
}

func (s *ApplicationService) ListAccepted(ctx context.Context, applicantID common.UUID) ([]application.AcceptedJob, error) {
	return s.repo.ListAcceptedByApplicant(ctx, applicantID)
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}
