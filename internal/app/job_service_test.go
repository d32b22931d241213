package app

import (
	"context"
	"strings"
	"testing"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/notification"
)

func newJobServiceForTest() (*JobService, *fakeJobRepo, *fakeApplicationRepo, *fakeNotificationRepo) {
	jobRepo := newFakeJobRepo()
	applicationRepo := newFakeApplicationRepo(jobRepo)
	notificationRepo := newFakeNotificationRepo()
	notifier := NewNotificationService(notificationRepo, noopLogger{})
	service := NewJobService(jobRepo, applicationRepo, newFakeSavedJobRepo(jobRepo), notifier)
	return service, jobRepo, applicationRepo, notificationRepo
}

func seedJob(t *testing.T, repo *fakeJobRepo, ownerID common.UUID, status job.Status) *job.Job {
	t.Helper()
	created, err := repo.Create(context.Background(), job.Job{
		OwnerID: ownerID,
		Title:   "Flyer distribution",
		Status:  status,
	})
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	return created
}

func seedAcceptedApplication(t *testing.T, repo *fakeApplicationRepo, jobID, applicantID common.UUID) *application.Application {
	t.Helper()
	created, err := repo.Create(context.Background(), application.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      application.StatusAccepted,
	})
	if err != nil {
		t.Fatalf("expected application created, got %v", err)
	}
	return created
}

func TestJobServiceCreate_DefaultsToOpen(t *testing.T) {
	service, _, _, _ := newJobServiceForTest()

	created, err := service.Create(context.Background(), job.Job{OwnerID: common.NewUUID(), Title: "Tutoring"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != job.StatusOpen {
		t.Fatalf("expected status open, got %s", created.Status)
	}
	if created.Tags == nil || created.RequiredSkills == nil {
		t.Fatal("expected array fields to be non-nil")
	}
}

func TestJobServiceCreate_RejectsLifecycleStatus(t *testing.T) {
	service, _, _, _ := newJobServiceForTest()

	_, err := service.Create(context.Background(), job.Job{OwnerID: common.NewUUID(), Title: "Tutoring", Status: job.StatusInProgress})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobServiceGet_HidesDraftFromNonOwner(t *testing.T) {
	service, jobRepo, _, _ := newJobServiceForTest()
	owner := common.NewUUID()
	draft := seedJob(t, jobRepo, owner, job.StatusDraft)

	if _, err := service.Get(context.Background(), draft.ID, common.NewUUID()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found for stranger, got %v", err)
	}
	if _, err := service.Get(context.Background(), draft.ID, ""); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found for anonymous viewer, got %v", err)
	}
	got, err := service.Get(context.Background(), draft.ID, owner)
	if err != nil {
		t.Fatalf("expected owner to see draft, got %v", err)
	}
	if got.ID != draft.ID {
		t.Fatalf("expected job %s, got %s", draft.ID, got.ID)
	}
}

func TestJobServiceUpdate_BlocksStatusJumpPastOpen(t *testing.T) {
	service, jobRepo, _, _ := newJobServiceForTest()
	owner := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusOpen)

	j.Status = job.StatusCompleted
	_, err := service.Update(context.Background(), *j, owner)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	inProgress := seedJob(t, jobRepo, owner, job.StatusInProgress)
	inProgress.Status = job.StatusOpen
	if _, err := service.Update(context.Background(), *inProgress, owner); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for in-progress job, got %v", err)
	}
}

func TestJobServiceUpdate_AllowsDraftToOpen(t *testing.T) {
	service, jobRepo, _, _ := newJobServiceForTest()
	owner := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusDraft)

	j.Status = job.StatusOpen
	updated, err := service.Update(context.Background(), *j, owner)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != job.StatusOpen {
		t.Fatalf("expected status open, got %s", updated.Status)
	}
}

func TestJobServiceUpdate_ForbidsNonOwner(t *testing.T) {
	service, jobRepo, _, _ := newJobServiceForTest()
	j := seedJob(t, jobRepo, common.NewUUID(), job.StatusOpen)

	if _, err := service.Update(context.Background(), *j, common.NewUUID()); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestJobServiceRequestCompletion_Handshake(t *testing.T) {
	service, jobRepo, applicationRepo, notificationRepo := newJobServiceForTest()
	owner := common.NewUUID()
	applicant := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusInProgress)
	seedAcceptedApplication(t, applicationRepo, j.ID, applicant)

	updated, err := service.RequestCompletion(context.Background(), j.ID, owner)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != job.StatusPendingCompletion {
		t.Fatalf("expected pending_completion, got %s", updated.Status)
	}
	sent := notificationRepo.byType(notification.TypeCompletionRequested)
	if len(sent) != 1 {
		t.Fatalf("expected one completion notification, got %d", len(sent))
	}
	if sent[0].UserID != applicant {
		t.Fatalf("expected notification for applicant %s, got %s", applicant, sent[0].UserID)
	}
	if len(jobRepo.messages) != 1 || !strings.Contains(jobRepo.messages[0], j.Title) {
		t.Fatalf("expected a conversation message naming the job, got %v", jobRepo.messages)
	}
}

func TestJobServiceRequestCompletion_RequiresInProgress(t *testing.T) {
	service, jobRepo, applicationRepo, _ := newJobServiceForTest()
	owner := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusOpen)
	seedAcceptedApplication(t, applicationRepo, j.ID, common.NewUUID())

	if _, err := service.RequestCompletion(context.Background(), j.ID, owner); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobServiceRequestCompletion_RequiresAcceptedApplicant(t *testing.T) {
	service, jobRepo, _, _ := newJobServiceForTest()
	owner := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusInProgress)

	if _, err := service.RequestCompletion(context.Background(), j.ID, owner); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJobServiceAcceptCompletion(t *testing.T) {
	service, jobRepo, applicationRepo, _ := newJobServiceForTest()
	owner := common.NewUUID()
	applicant := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusPendingCompletion)
	seedAcceptedApplication(t, applicationRepo, j.ID, applicant)

	updated, err := service.AcceptCompletion(context.Background(), j.ID, applicant)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != job.StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
}

func TestJobServiceAcceptCompletion_OnlyAcceptedApplicant(t *testing.T) {
	service, jobRepo, applicationRepo, _ := newJobServiceForTest()
	owner := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusPendingCompletion)
	seedAcceptedApplication(t, applicationRepo, j.ID, common.NewUUID())

	if _, err := service.AcceptCompletion(context.Background(), j.ID, owner); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestJobServiceDenyCompletion_ReturnsToInProgress(t *testing.T) {
	service, jobRepo, applicationRepo, _ := newJobServiceForTest()
	owner := common.NewUUID()
	applicant := common.NewUUID()
	j := seedJob(t, jobRepo, owner, job.StatusPendingCompletion)
	seedAcceptedApplication(t, applicationRepo, j.ID, applicant)

	updated, err := service.DenyCompletion(context.Background(), j.ID, applicant, "half the flyers are still here")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != job.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", updated.Status)
	}
	if len(jobRepo.messages) != 1 || !strings.Contains(jobRepo.messages[0], "half the flyers") {
		t.Fatalf("expected the reason in the conversation message, got %v", jobRepo.messages)
	}

	// The handshake can restart after a deny.
	if _, err := service.RequestCompletion(context.Background(), j.ID, owner); err != nil {
		t.Fatalf("expected a second completion request to succeed, got %v", err)
	}
}

func TestJobServiceSaveJob_HidesDrafts(t *testing.T) {
	service, jobRepo, _, _ := newJobServiceForTest()
	student := common.NewUUID()
	draft := seedJob(t, jobRepo, common.NewUUID(), job.StatusDraft)
	open := seedJob(t, jobRepo, common.NewUUID(), job.StatusOpen)

	if err := service.SaveJob(context.Background(), student, draft.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found for draft, got %v", err)
	}
	if err := service.SaveJob(context.Background(), student, open.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	saved, err := service.ListSaved(context.Background(), student)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(saved) != 1 || saved[0].ID != open.ID {
		t.Fatalf("expected the open job to be saved, got %v", saved)
	}
}
