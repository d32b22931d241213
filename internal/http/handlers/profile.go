package handlers

import (
	"net/http"

	"studentgigs/internal/app"
	"studentgigs/internal/domain/profile"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type studentProfileRequest struct {
	University string   `json:"university"`
	Degree     string   `json:"degree"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
	Portfolio  string   `json:"portfolio"`
}

func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	p, err := h.profiles.GetStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		response.Error(w, errUnauthorized())
		return
	}
	targetID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	p, err := h.profiles.GetStudent(r.Context(), targetID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req studentProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	p, err := h.profiles.UpsertStudent(r.Context(), profile.StudentProfile{
		UserID:     userID,
		University: req.University,
		Degree:     req.Degree,
		Bio:        req.Bio,
		Skills:     req.Skills,
		Portfolio:  req.Portfolio,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}
