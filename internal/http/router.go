package http

import (
	"net/http"
	"strings"
	"time"

	"studentgigs/internal/domain/user"
	"studentgigs/internal/http/handlers"
	"studentgigs/internal/http/metrics"
	httpmw "studentgigs/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	JobHandler          *handlers.JobHandler
	ApplicationHandler  *handlers.ApplicationHandler
	InterviewHandler    *handlers.InterviewHandler
	MessageHandler      *handlers.MessageHandler
	NotificationHandler *handlers.NotificationHandler
	ProfileHandler      *handlers.ProfileHandler
	ReviewHandler       *handlers.ReviewHandler
	AdminHandler        *handlers.AdminHandler
	MetricsHandler      *handlers.MetricsHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			handlers.Health(w, req)
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Metrics(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/reviews":
			r.deps.ReviewHandler.ListRecent(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/jobs/") && path != "/api/jobs/mine" && path != "/api/jobs/saved":
			// Job detail stays public so listings can be shared, but a
			// signed-in owner must still be able to open their own draft.
			r.deps.AuthMiddleware.AuthenticateOptional(http.HandlerFunc(r.deps.JobHandler.Get)).ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	if strings.HasPrefix(path, "/api/admin/") {
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.handleAdmin)).ServeHTTP(w, req)
		return
	}

	switch {
	case req.Method == http.MethodGet && path == "/api/users/me":
		r.deps.AuthHandler.Me(w, req)
		return

	case req.Method == http.MethodPost && path == "/api/jobs":
		r.deps.JobHandler.Create(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/jobs/mine":
		r.deps.JobHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/jobs/saved":
		r.deps.JobHandler.ListSaved(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/jobs/") && strings.HasSuffix(path, "/save"):
		r.deps.JobHandler.Save(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/jobs/") && strings.HasSuffix(path, "/save"):
		r.deps.JobHandler.Unsave(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/jobs/") && strings.HasSuffix(path, "/complete"):
		r.deps.JobHandler.RequestCompletion(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/jobs/") && strings.HasSuffix(path, "/accept-completion"):
		r.deps.JobHandler.AcceptCompletion(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/jobs/") && strings.HasSuffix(path, "/deny-completion"):
		r.deps.JobHandler.DenyCompletion(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/jobs/"):
		r.deps.JobHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/jobs/"):
		r.deps.JobHandler.Delete(w, req)
		return

	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/applications/jobs/") && strings.HasSuffix(path, "/apply"):
		r.deps.ApplicationHandler.Apply(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/applications/jobs/"):
		r.deps.ApplicationHandler.ListByJob(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/applications/mine":
		r.deps.ApplicationHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/applications/received":
		r.deps.ApplicationHandler.ListReceived(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/applications/accepted":
		r.deps.ApplicationHandler.ListAccepted(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/applications/") && strings.HasSuffix(path, "/status"):
		r.deps.ApplicationHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/applications/"):
		r.deps.ApplicationHandler.Withdraw(w, req)
		return

	case req.Method == http.MethodPost && path == "/api/interviews/schedule":
		r.deps.InterviewHandler.Schedule(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/interviews/upcoming":
		r.deps.InterviewHandler.Upcoming(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/interviews/") && strings.HasSuffix(path, "/status"):
		r.deps.InterviewHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/interviews/") && strings.HasSuffix(path, "/reschedule"):
		r.deps.InterviewHandler.Reschedule(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/interviews/") && strings.HasSuffix(path, "/complete"):
		r.deps.InterviewHandler.Complete(w, req)
		return

	case req.Method == http.MethodGet && path == "/api/messages/conversations":
		r.deps.MessageHandler.ListConversations(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/messages/conversations":
		r.deps.MessageHandler.OpenConversation(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/messages/conversations/"):
		r.deps.MessageHandler.ListMessages(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/messages/conversations/"):
		r.deps.MessageHandler.Send(w, req)
		return

	case req.Method == http.MethodGet && path == "/api/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/notifications/unread-count":
		r.deps.NotificationHandler.UnreadCount(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/notifications/read-all":
		r.deps.NotificationHandler.MarkAllRead(w, req)
		return
	case (req.Method == http.MethodPut || req.Method == http.MethodPost) && strings.HasPrefix(path, "/api/notifications/") && strings.HasSuffix(path, "/read"):
		r.deps.NotificationHandler.MarkRead(w, req)
		return

	case req.Method == http.MethodGet && path == "/api/profiles/student":
		r.deps.ProfileHandler.GetMine(w, req)
		return
	case req.Method == http.MethodPut && path == "/api/profiles/student":
		r.deps.ProfileHandler.Upsert(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/profiles/student/"):
		r.deps.ProfileHandler.Get(w, req)
		return

	case req.Method == http.MethodPost && path == "/api/reviews":
		r.deps.ReviewHandler.Create(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) handleAdmin(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/api/admin/stats":
		r.deps.AdminHandler.Stats(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/users":
		r.deps.AdminHandler.ListUsers(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/jobs":
		r.deps.AdminHandler.ListJobs(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/admin/users/"):
		r.deps.AdminHandler.DeleteUser(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/admin/jobs/"):
		r.deps.AdminHandler.DeleteJob(w, req)
		return
	}

	http.NotFound(w, req)
}
