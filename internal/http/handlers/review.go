package handlers

import (
	"net/http"

	"studentgigs/internal/app"
	"studentgigs/internal/domain/review"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
)

type ReviewHandler struct {
	reviews *app.ReviewService
}

func NewReviewHandler(reviews *app.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.reviews.Create(r.Context(), review.Review{
		UserID:  userID,
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ReviewHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	items, err := h.reviews.ListRecent(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []review.Review{}
	}
	response.JSON(w, http.StatusOK, items)
}
