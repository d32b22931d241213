package app

import (
	"context"
	"strings"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/interview"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/notification"
)

type InterviewService struct {
	repo         interview.Repository
	applications application.Repository
	jobs         job.Repository
	notifier     Notifier
}

func NewInterviewService(repo interview.Repository, applications application.Repository, jobs job.Repository, notifier Notifier) *InterviewService {
	return &InterviewService{repo: repo, applications: applications, jobs: jobs, notifier: notifier}
}

type ScheduleRequest struct {
	ApplicationID common.UUID
	ScheduledDate string
	ScheduledTime string
	Location      string
	MeetingLink   string
	Notes         string
}

func (s *InterviewService) Schedule(ctx context.Context, req ScheduleRequest, callerID common.UUID) (*interview.Interview, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.ScheduledDate) == "" {
		fields["scheduled_date"] = "scheduled_date is required"
	}
	if strings.TrimSpace(req.ScheduledTime) == "" {
		fields["scheduled_time"] = "scheduled_time is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid interview", fields)
	}
	if _, err := time.Parse("2006-01-02", req.ScheduledDate); err != nil {
		return nil, common.NewValidationError("invalid interview", map[string]string{"scheduled_date": "scheduled_date must be YYYY-MM-DD"})
	}

	app, err := s.applications.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if j.OwnerID != callerID {
		return nil, common.NewError(common.CodeForbidden, "only the job owner may schedule an interview", nil)
	}

	created, err := s.repo.Create(ctx, interview.Interview{
		ApplicationID: app.ID,
		JobID:         j.ID,
		EmployerID:    j.OwnerID,
		StudentID:     app.ApplicantID,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Location:      strings.TrimSpace(req.Location),
		MeetingLink:   strings.TrimSpace(req.MeetingLink),
		Notes:         strings.TrimSpace(req.Notes),
		Status:        interview.StatusScheduled,
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Dispatch(ctx, notification.Notification{
		UserID:      app.ApplicantID,
		Type:        notification.TypeInterviewScheduled,
		Title:       "Interview scheduled",
		Body:        "An interview for \"" + j.Title + "\" was scheduled on " + created.ScheduledDate + " at " + created.ScheduledTime + ".",
		RelatedID:   created.ID,
		RelatedType: "interview",
	})
	return created, nil
}

func (s *InterviewService) Reschedule(ctx context.Context, id common.UUID, change interview.Reschedule, callerID common.UUID) (*interview.Interview, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.EmployerID != callerID {
		return nil, common.NewError(common.CodeForbidden, "only the employer may reschedule an interview", nil)
	}
	if strings.TrimSpace(change.ScheduledDate) == "" {
		change.ScheduledDate = iv.ScheduledDate
	}
	if strings.TrimSpace(change.ScheduledTime) == "" {
		change.ScheduledTime = iv.ScheduledTime
	}
	updated, err := s.repo.Reschedule(ctx, id, change)
	if err != nil {
		return nil, err
	}
	s.notifier.Dispatch(ctx, notification.Notification{
		UserID:      iv.StudentID,
		Type:        notification.TypeInterviewRescheduled,
		Title:       "Interview rescheduled",
		Body:        "Your interview was moved to " + updated.ScheduledDate + " at " + updated.ScheduledTime + ".",
		RelatedID:   iv.ID,
		RelatedType: "interview",
	})
	return updated, nil
}

// UpdateStatus is open to either party of the interview.
func (s *InterviewService) UpdateStatus(ctx context.Context, id common.UUID, status interview.Status, callerID common.UUID) (*interview.Interview, error) {
	status = interview.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !interview.KnownStatus(status) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be scheduled, rescheduled, completed, or cancelled"})
	}
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.EmployerID != callerID && iv.StudentID != callerID {
		return nil, common.NewError(common.CodeForbidden, "interview belongs to another pair of users", nil)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *InterviewService) Complete(ctx context.Context, id, callerID common.UUID) (*interview.Interview, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.EmployerID != callerID {
		return nil, common.NewError(common.CodeForbidden, "only the employer may complete an interview", nil)
	}
	return s.repo.UpdateStatus(ctx, id, interview.StatusCompleted)
}

func (s *InterviewService) Upcoming(ctx context.Context, userID common.UUID) ([]interview.Upcoming, error) {
	return s.repo.ListUpcoming(ctx, userID)
}
