package messaging

import (
	"context"

	"studentgigs/internal/common"
)

type Repository interface {
	FindOrCreateConversation(ctx context.Context, a, b common.UUID, jobID *common.UUID) (*Conversation, error)
	GetConversation(ctx context.Context, id common.UUID) (*Conversation, error)
	ListConversations(ctx context.Context, userID common.UUID) ([]ConversationView, error)
	// AppendMessage inserts the message and bumps the conversation's
	// updated_at in one transaction.
	AppendMessage(ctx context.Context, conversationID, senderID common.UUID, body string) (*Message, error)
	ListMessages(ctx context.Context, conversationID common.UUID, limit, offset int) ([]Message, error)
	MarkRead(ctx context.Context, conversationID, readerID common.UUID) error
}
