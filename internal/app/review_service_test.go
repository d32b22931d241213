package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/review"
)

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []review.Review
}

func (r *fakeReviewRepo) Create(ctx context.Context, rv review.Review) (*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv.ID = common.NewUUID()
	rv.CreatedAt = time.Now().UTC()
	r.reviews = append(r.reviews, rv)
	copy := rv
	return &copy, nil
}

func (r *fakeReviewRepo) ListRecent(ctx context.Context, limit, offset int) ([]review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]review.Review(nil), r.reviews...), nil
}

func TestReviewServiceCreate(t *testing.T) {
	service := NewReviewService(&fakeReviewRepo{})

	created, err := service.Create(context.Background(), review.Review{
		UserID:  common.NewUUID(),
		Rating:  5,
		Content: "  Found a great weekend gig.  ",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Content != "Found a great weekend gig." {
		t.Fatalf("expected trimmed content, got %q", created.Content)
	}
}

func TestReviewServiceCreate_Validation(t *testing.T) {
	service := NewReviewService(&fakeReviewRepo{})

	if _, err := service.Create(context.Background(), review.Review{UserID: common.NewUUID(), Rating: 0, Content: "ok"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for rating 0, got %v", err)
	}
	if _, err := service.Create(context.Background(), review.Review{UserID: common.NewUUID(), Rating: 6, Content: "ok"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for rating 6, got %v", err)
	}
	if _, err := service.Create(context.Background(), review.Review{UserID: common.NewUUID(), Rating: 3, Content: "   "}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for blank content, got %v", err)
	}
}

func TestAdminServiceListJobs_IncludesDrafts(t *testing.T) {
	jobRepo := newFakeJobRepo()
	service := NewAdminService(nil, newFakeUserRepo(), jobRepo)
	ownerID := common.NewUUID()

	seedJob(t, jobRepo, ownerID, job.StatusOpen)
	seedJob(t, jobRepo, ownerID, job.StatusDraft)
	seedJob(t, jobRepo, ownerID, job.StatusCompleted)

	items, err := service.ListJobs(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all jobs regardless of status, got %d", len(items))
	}
	drafts := 0
	for _, j := range items {
		if j.Status == job.StatusDraft {
			drafts++
		}
	}
	if drafts != 1 {
		t.Fatalf("expected the draft to be listed, got %d", drafts)
	}
}

func TestAdminServiceDeleteUser_BlocksSelf(t *testing.T) {
	userRepo := newFakeUserRepo()
	jobRepo := newFakeJobRepo()
	service := NewAdminService(nil, userRepo, jobRepo)

	admin := seedUser(t, userRepo, "admin@example.com")
	other := seedUser(t, userRepo, "other@example.com")

	if err := service.DeleteUser(context.Background(), admin.ID, admin.ID); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := service.DeleteUser(context.Background(), other.ID, admin.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := userRepo.GetByID(context.Background(), other.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
}
