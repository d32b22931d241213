package app

import (
	"context"
	"sync"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/interview"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/messaging"
	"studentgigs/internal/domain/notification"
	"studentgigs/internal/domain/user"
)

type fakeJobRepo struct {
	mu       sync.Mutex
	jobs     map[common.UUID]*job.Job
	messages []string
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	j.Normalize()
	r.jobs[j.ID] = &j
	return cloneJob(&j), nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.jobs[j.ID]
	if current == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.CreatedAt = current.CreatedAt
	j.UpdatedAt = time.Now().UTC()
	j.Normalize()
	r.jobs[j.ID] = &j
	return cloneJob(&j), nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.jobs[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return cloneJob(j), nil
}

func (r *fakeJobRepo) ListPublic(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Job
	for _, j := range r.jobs {
		if j.Status == job.StatusDraft {
			continue
		}
		out = append(out, *cloneJob(j))
	}
	return out, nil
}

func (r *fakeJobRepo) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Job
	for _, j := range r.jobs {
		out = append(out, *cloneJob(j))
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeJobRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.Job
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			out = append(out, *cloneJob(j))
		}
	}
	return out, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.jobs[id] == nil {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) RequestCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*job.Job, error) {
	return r.transition(jobID, message, job.StatusInProgress, job.StatusPendingCompletion)
}

func (r *fakeJobRepo) AcceptCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*job.Job, error) {
	return r.transition(jobID, message, job.StatusPendingCompletion, job.StatusCompleted)
}

func (r *fakeJobRepo) DenyCompletion(ctx context.Context, jobID, ownerID, applicantID common.UUID, message string) (*job.Job, error) {
	return r.transition(jobID, message, job.StatusPendingCompletion, job.StatusInProgress)
}

func (r *fakeJobRepo) transition(jobID common.UUID, message string, from, to job.Status) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.jobs[jobID]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	if j.Status != from {
		return nil, common.NewError(common.CodeValidation, "job is not in a state that allows this transition", nil)
	}
	j.Status = to
	j.UpdatedAt = time.Now().UTC()
	r.messages = append(r.messages, message)
	return cloneJob(j), nil
}

func cloneJob(j *job.Job) *job.Job {
	copy := *j
	copy.Tags = append([]string{}, j.Tags...)
	copy.RequiredSkills = append([]string{}, j.RequiredSkills...)
	return &copy
}

type fakeSavedJobRepo struct {
	mu    sync.Mutex
	saved map[common.UUID]map[common.UUID]bool
	jobs  *fakeJobRepo
}

func newFakeSavedJobRepo(jobs *fakeJobRepo) *fakeSavedJobRepo {
	return &fakeSavedJobRepo{saved: make(map[common.UUID]map[common.UUID]bool), jobs: jobs}
}

func (r *fakeSavedJobRepo) Save(ctx context.Context, userID, jobID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved[userID] == nil {
		r.saved[userID] = make(map[common.UUID]bool)
	}
	r.saved[userID][jobID] = true
	return nil
}

func (r *fakeSavedJobRepo) Unsave(ctx context.Context, userID, jobID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.saved[userID], jobID)
	return nil
}

func (r *fakeSavedJobRepo) ListByUser(ctx context.Context, userID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	ids := make([]common.UUID, 0, len(r.saved[userID]))
	for id := range r.saved[userID] {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	var out []job.Job
	for _, id := range ids {
		j, err := r.jobs.GetByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[common.UUID]*application.Application
	jobs         *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[common.UUID]*application.Application), jobs: jobs}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return nil, common.NewError(common.CodeConflict, "you have already applied to this job", nil)
		}
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.applications[app.ID] = &app
	copy := app
	return &copy, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Application
	for _, app := range r.applications {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Application
	for _, app := range r.applications {
		if app.ApplicantID == applicantID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Application
	for _, app := range r.applications {
		j, err := r.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			continue
		}
		if j.OwnerID == ownerID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListAcceptedByApplicant(ctx context.Context, applicantID common.UUID) ([]application.AcceptedJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.AcceptedJob
	for _, app := range r.applications {
		if app.ApplicantID != applicantID || app.Status != application.StatusAccepted {
			continue
		}
		j, err := r.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			continue
		}
		out = append(out, application.AcceptedJob{
			Application:          *app,
			JobID:                j.ID,
			JobTitle:             j.Title,
			JobStatus:            string(j.Status),
			EmployerID:           j.OwnerID,
			HasCompletionRequest: j.Status == job.StatusPendingCompletion,
		})
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindAcceptedByJob(ctx context.Context, jobID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.applications {
		if app.JobID == jobID && app.Status == application.StatusAccepted {
			copy := *app
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "accepted application not found", nil)
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) Accept(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	app := r.applications[id]
	if app == nil {
		r.mu.Unlock()
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = application.StatusAccepted
	app.UpdatedAt = time.Now().UTC()
	copy := *app
	r.mu.Unlock()

	r.jobs.mu.Lock()
	if j := r.jobs.jobs[app.JobID]; j != nil && j.Status == job.StatusOpen {
		j.Status = job.StatusInProgress
	}
	r.jobs.mu.Unlock()
	return &copy, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applications[id] == nil {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	delete(r.applications, id)
	return nil
}

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[common.UUID]*interview.Interview
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[common.UUID]*interview.Interview)}
}

func (r *fakeInterviewRepo) Create(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.interviews {
		if existing.ApplicationID == iv.ApplicationID && interview.Active(existing.Status) {
			return nil, common.NewError(common.CodeValidation, "an active interview already exists for this application", nil)
		}
	}
	iv.ID = common.NewUUID()
	now := time.Now().UTC()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	r.interviews[iv.ID] = &iv
	copy := iv
	return &copy, nil
}

func (r *fakeInterviewRepo) GetByID(ctx context.Context, id common.UUID) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv := r.interviews[id]
	if iv == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	copy := *iv
	return &copy, nil
}

func (r *fakeInterviewRepo) Reschedule(ctx context.Context, id common.UUID, change interview.Reschedule) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv := r.interviews[id]
	if iv == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	iv.ScheduledDate = change.ScheduledDate
	iv.ScheduledTime = change.ScheduledTime
	iv.Location = change.Location
	iv.MeetingLink = change.MeetingLink
	iv.Notes = change.Notes
	iv.Status = interview.StatusRescheduled
	iv.UpdatedAt = time.Now().UTC()
	copy := *iv
	return &copy, nil
}

func (r *fakeInterviewRepo) UpdateStatus(ctx context.Context, id common.UUID, status interview.Status) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv := r.interviews[id]
	if iv == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	iv.Status = status
	iv.UpdatedAt = time.Now().UTC()
	copy := *iv
	return &copy, nil
}

func (r *fakeInterviewRepo) ListUpcoming(ctx context.Context, userID common.UUID) ([]interview.Upcoming, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []interview.Upcoming
	for _, iv := range r.interviews {
		if !interview.Active(iv.Status) {
			continue
		}
		if iv.EmployerID != userID && iv.StudentID != userID {
			continue
		}
		out = append(out, interview.Upcoming{Interview: *iv})
	}
	return out, nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	byID    map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[common.UUID]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byEmail[account.Email] != nil {
		return nil, common.NewError(common.CodeConflict, "email is already registered", nil)
	}
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.byEmail[account.Email] = &account
	r.byID[account.ID] = &account
	copy := account
	return &copy, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	return &copy, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	return &copy, nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []user.User
	for _, account := range r.byID {
		out = append(out, *account)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.byEmail, account.Email)
	delete(r.byID, id)
	return nil
}

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[common.UUID]*messaging.Conversation
	messages      map[common.UUID][]messaging.Message
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[common.UUID]*messaging.Conversation),
		messages:      make(map[common.UUID][]messaging.Message),
	}
}

func (r *fakeConversationRepo) FindOrCreateConversation(ctx context.Context, a, b common.UUID, jobID *common.UUID) (*messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, b = messaging.NormalizePair(a, b)
	for _, conv := range r.conversations {
		if conv.ParticipantA == a && conv.ParticipantB == b {
			copy := *conv
			return &copy, nil
		}
	}
	now := time.Now().UTC()
	conv := &messaging.Conversation{
		ID:           common.NewUUID(),
		ParticipantA: a,
		ParticipantB: b,
		JobID:        jobID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.conversations[conv.ID] = conv
	copy := *conv
	return &copy, nil
}

func (r *fakeConversationRepo) GetConversation(ctx context.Context, id common.UUID) (*messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv := r.conversations[id]
	if conv == nil {
		return nil, common.NewError(common.CodeNotFound, "conversation not found", nil)
	}
	copy := *conv
	return &copy, nil
}

func (r *fakeConversationRepo) ListConversations(ctx context.Context, userID common.UUID) ([]messaging.ConversationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messaging.ConversationView
	for _, conv := range r.conversations {
		if !conv.HasParticipant(userID) {
			continue
		}
		view := messaging.ConversationView{Conversation: *conv}
		for _, msg := range r.messages[conv.ID] {
			if msg.SenderID != userID && !msg.IsRead {
				view.UnreadCount++
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (r *fakeConversationRepo) AppendMessage(ctx context.Context, conversationID, senderID common.UUID, body string) (*messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conversations[conversationID] == nil {
		return nil, common.NewError(common.CodeNotFound, "conversation not found", nil)
	}
	msg := messaging.Message{
		ID:             common.NewUUID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	r.messages[conversationID] = append(r.messages[conversationID], msg)
	return &msg, nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, conversationID common.UUID, limit, offset int) ([]messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.messages[conversationID]
	if offset >= len(items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return append([]messaging.Message(nil), items[offset:end]...), nil
}

func (r *fakeConversationRepo) MarkRead(ctx context.Context, conversationID, readerID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.messages[conversationID]
	for i := range items {
		if items[i].SenderID != readerID {
			items[i].IsRead = true
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []notification.Notification
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	n.ID = common.NewUUID()
	n.CreatedAt = time.Now().UTC()
	r.notifications = append(r.notifications, n)
	copy := n
	return &copy, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID common.UUID, limit, offset int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	// Same window semantics as LIMIT/OFFSET in SQL.
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) UnreadCount(ctx context.Context, userID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return common.NewError(common.CodeNotFound, "notification not found", nil)
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) byType(t notification.Type) []notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.notifications {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

type noopLogger struct{}

func (noopLogger) Info(msg string)  {}
func (noopLogger) Error(msg string) {}
