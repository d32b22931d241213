package handlers

import (
	"net/http"

	"studentgigs/internal/app"
	"studentgigs/internal/common"
	"studentgigs/internal/domain/messaging"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
)

type MessageHandler struct {
	messages *app.MessageService
}

func NewMessageHandler(messages *app.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type openConversationRequest struct {
	UserID string `json:"user_id"`
	JobID  string `json:"job_id"`
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (h *MessageHandler) OpenConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req openConversationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	otherID, err := common.ParseUUID(req.UserID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid user id", map[string]string{"user_id": "invalid uuid"}))
		return
	}
	var jobID *common.UUID
	if req.JobID != "" {
		parsed, err := common.ParseUUID(req.JobID)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid job id", map[string]string{"job_id": "invalid uuid"}))
			return
		}
		jobID = &parsed
	}
	conversation, err := h.messages.OpenConversation(r.Context(), userID, otherID, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, conversation)
}

func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.messages.ListConversations(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []messaging.ConversationView{}
	}
	response.JSON(w, http.StatusOK, items)
}

// ListMessages also marks the returned page as read for the caller.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	conversationID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.messages.Messages(r.Context(), conversationID, userID, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []messaging.Message{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	conversationID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	sent, err := h.messages.Send(r.Context(), conversationID, userID, req.Body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, sent)
}
