package app

import (
	"context"
	"strings"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/notification"
)

type JobService struct {
	jobs         job.Repository
	applications application.Repository
	saved        job.SavedRepository
	notifier     Notifier
}

func NewJobService(jobs job.Repository, applications application.Repository, saved job.SavedRepository, notifier Notifier) *JobService {
	return &JobService{jobs: jobs, applications: applications, saved: saved, notifier: notifier}
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return nil, common.NewValidationError("invalid job", map[string]string{"title": "title is required"})
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	if j.Status != job.StatusDraft && j.Status != job.StatusOpen {
		return nil, common.NewValidationError("invalid job", map[string]string{"status": "a new job must be draft or open"})
	}
	return s.jobs.Create(ctx, j)
}

func (s *JobService) Update(ctx context.Context, j job.Job, callerID common.UUID) (*job.Job, error) {
	current, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != callerID {
		return nil, common.NewError(common.CodeForbidden, "only the job owner may update it", nil)
	}
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return nil, common.NewValidationError("invalid job", map[string]string{"title": "title is required"})
	}
	if j.Status == "" {
		j.Status = current.Status
	}
	if !job.KnownStatus(j.Status) {
		return nil, common.NewValidationError("invalid job", map[string]string{"status": "unknown status"})
	}
	// The generic update only moves a job between draft and open; the
	// in-progress/completion statuses belong to the completion handshake.
	if j.Status != current.Status {
		fromEditable := current.Status == job.StatusDraft || current.Status == job.StatusOpen
		toEditable := j.Status == job.StatusDraft || j.Status == job.StatusOpen
		if !fromEditable || !toEditable {
			return nil, common.NewValidationError("invalid job", map[string]string{"status": "status cannot be changed directly once the job is in progress"})
		}
	}
	j.OwnerID = callerID
	return s.jobs.Update(ctx, j)
}

// Get hides drafts from everyone but their owner.
func (s *JobService) Get(ctx context.Context, id, viewerID common.UUID) (*job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.Status == job.StatusDraft && j.OwnerID != viewerID {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return j, nil
}

func (s *JobService) ListPublic(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.jobs.ListPublic(ctx, filter)
}

func (s *JobService) ListMine(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	return s.jobs.ListByOwner(ctx, ownerID)
}

func (s *JobService) Delete(ctx context.Context, id, callerID common.UUID) error {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if j.OwnerID != callerID {
		return common.NewError(common.CodeForbidden, "only the job owner may delete it", nil)
	}
	return s.jobs.Delete(ctx, id)
}

// RequestCompletion moves an in-progress job to pending_completion and
// announces it in the owner/applicant conversation.
func (s *JobService) RequestCompletion(ctx context.Context, jobID, callerID common.UUID) (*job.Job, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.OwnerID != callerID {
		return nil, common.NewError(common.CodeForbidden, "only the job owner may request completion", nil)
	}
	if j.Status != job.StatusInProgress {
		return nil, common.NewError(common.CodeValidation, "job is not in progress", nil)
	}
	accepted, err := s.applications.FindAcceptedByJob(ctx, jobID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "job has no accepted applicant", nil)
		}
		return nil, err
	}
	message := "The employer has marked \"" + j.Title + "\" as complete and is awaiting your confirmation."
	updated, err := s.jobs.RequestCompletion(ctx, jobID, j.OwnerID, accepted.ApplicantID, message)
	if err != nil {
		return nil, err
	}
	s.notifier.Dispatch(ctx, notification.Notification{
		UserID:      accepted.ApplicantID,
		Type:        notification.TypeCompletionRequested,
		Title:       "Completion requested",
		Body:        message,
		RelatedID:   jobID,
		RelatedType: "job",
	})
	return updated, nil
}

// AcceptCompletion is the accepted applicant's confirmation; the job becomes
// completed.
func (s *JobService) AcceptCompletion(ctx context.Context, jobID, callerID common.UUID) (*job.Job, error) {
	j, accepted, err := s.completionParties(ctx, jobID, callerID)
	if err != nil {
		return nil, err
	}
	message := "The work on \"" + j.Title + "\" has been confirmed as complete."
	return s.jobs.AcceptCompletion(ctx, jobID, j.OwnerID, accepted.ApplicantID, message)
}

// DenyCompletion returns the job to in_progress, carrying the applicant's
// reason into the conversation.
func (s *JobService) DenyCompletion(ctx context.Context, jobID, callerID common.UUID, reason string) (*job.Job, error) {
	j, accepted, err := s.completionParties(ctx, jobID, callerID)
	if err != nil {
		return nil, err
	}
	message := "The completion of \"" + j.Title + "\" was declined."
	if reason = strings.TrimSpace(reason); reason != "" {
		message += " Reason: " + reason
	}
	return s.jobs.DenyCompletion(ctx, jobID, j.OwnerID, accepted.ApplicantID, message)
}

func (s *JobService) completionParties(ctx context.Context, jobID, callerID common.UUID) (*job.Job, *application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if j.Status != job.StatusPendingCompletion {
		return nil, nil, common.NewError(common.CodeValidation, "job has no pending completion request", nil)
	}
	accepted, err := s.applications.FindAcceptedByJob(ctx, jobID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeValidation, "job has no accepted applicant", nil)
		}
		return nil, nil, err
	}
	if accepted.ApplicantID != callerID {
		return nil, nil, common.NewError(common.CodeForbidden, "only the accepted applicant may respond to a completion request", nil)
	}
	return j, accepted, nil
}

func (s *JobService) SaveJob(ctx context.Context, userID, jobID common.UUID) error {
	if _, err := s.Get(ctx, jobID, userID); err != nil {
		return err
	}
	return s.saved.Save(ctx, userID, jobID)
}

func (s *JobService) UnsaveJob(ctx context.Context, userID, jobID common.UUID) error {
	return s.saved.Unsave(ctx, userID, jobID)
}

func (s *JobService) ListSaved(ctx context.Context, userID common.UUID) ([]job.Job, error) {
	return s.saved.ListByUser(ctx, userID)
}
