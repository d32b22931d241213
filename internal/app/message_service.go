package app

import (
	"context"
	"strings"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/messaging"
	"studentgigs/internal/domain/user"
)

type MessageService struct {
	repo  messaging.Repository
	users user.Repository
	jobs  job.Repository
}

func NewMessageService(repo messaging.Repository, users user.Repository, jobs job.Repository) *MessageService {
	return &MessageService{repo: repo, users: users, jobs: jobs}
}

const maxMessageLength = 4000

// OpenConversation finds or creates the thread between the caller and the
// other user, optionally scoped to a job.
func (s *MessageService) OpenConversation(ctx context.Context, callerID, otherID common.UUID, jobID *common.UUID) (*messaging.Conversation, error) {
	if callerID == otherID {
		return nil, common.NewError(common.CodeValidation, "cannot start a conversation with yourself", nil)
	}
	if _, err := s.users.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	if jobID != nil {
		if _, err := s.jobs.GetByID(ctx, *jobID); err != nil {
			return nil, err
		}
	}
	return s.repo.FindOrCreateConversation(ctx, callerID, otherID, jobID)
}

func (s *MessageService) ListConversations(ctx context.Context, userID common.UUID) ([]messaging.ConversationView, error) {
	return s.repo.ListConversations(ctx, userID)
}

// Messages returns a page of the thread and marks the counterparty's
// messages read for the caller.
func (s *MessageService) Messages(ctx context.Context, conversationID, callerID common.UUID, limit, offset int) ([]messaging.Message, error) {
	conv, err := s.conversationFor(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.repo.ListMessages(ctx, conv.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkRead(ctx, conv.ID, callerID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MessageService) Send(ctx context.Context, conversationID, senderID common.UUID, body string) (*messaging.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, common.NewValidationError("invalid message", map[string]string{"body": "body is required"})
	}
	if len(body) > maxMessageLength {
		return nil, common.NewValidationError("invalid message", map[string]string{"body": "body is too long"})
	}
	conv, err := s.conversationFor(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}
	return s.repo.AppendMessage(ctx, conv.ID, senderID, body)
}

func (s *MessageService) conversationFor(ctx context.Context, conversationID, userID common.UUID) (*messaging.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, common.NewError(common.CodeForbidden, "conversation belongs to other users", nil)
	}
	return conv, nil
}
