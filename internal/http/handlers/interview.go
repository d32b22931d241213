package handlers

import (
	"net/http"

	"studentgigs/internal/app"
	"studentgigs/internal/common"
	"studentgigs/internal/domain/interview"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
)

type InterviewHandler struct {
	interviews *app.InterviewService
}

func NewInterviewHandler(interviews *app.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

type scheduleRequest struct {
	ApplicationID string `json:"application_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Location      string `json:"location"`
	MeetingLink   string `json:"meeting_link"`
	Notes         string `json:"notes"`
}

type rescheduleRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	MeetingLink string `json:"meeting_link"`
	Notes       string `json:"notes"`
}

type interviewStatusRequest struct {
	Status string `json:"status"`
}

func (h *InterviewHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := common.ParseUUID(req.ApplicationID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application id", map[string]string{"application_id": "invalid uuid"}))
		return
	}
	created, err := h.interviews.Schedule(r.Context(), app.ScheduleRequest{
		ApplicationID: applicationID,
		ScheduledDate: req.Date,
		ScheduledTime: req.Time,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		Notes:         req.Notes,
	}, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *InterviewHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	interviewID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req rescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.interviews.Reschedule(r.Context(), interviewID, interview.Reschedule{
		ScheduledDate: req.Date,
		ScheduledTime: req.Time,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		Notes:         req.Notes,
	}, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *InterviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	interviewID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req interviewStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.interviews.UpdateStatus(r.Context(), interviewID, interview.Status(req.Status), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *InterviewHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	interviewID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.interviews.Complete(r.Context(), interviewID, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *InterviewHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.interviews.Upcoming(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []interview.Upcoming{}
	}
	response.JSON(w, http.StatusOK, items)
}
