package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/messaging"
)

type ConversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) FindOrCreateConversation(ctx context.Context, a, b common.UUID, jobID *common.UUID) (*messaging.Conversation, error) {
	var conversationID common.UUID
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		id, err := findOrCreateConversationTx(ctx, tx, a, b, jobID)
		if err != nil {
			return err
		}
		conversationID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetConversation(ctx, conversationID)
}

func (r *ConversationRepository) GetConversation(ctx context.Context, id common.UUID) (*messaging.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, participant_a, participant_b, job_id, created_at, updated_at FROM conversations WHERE id = $1`, id)
	var c messaging.Conversation
	if err := row.Scan(&c.ID, &c.ParticipantA, &c.ParticipantB, &c.JobID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "conversation not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load conversation", err)
	}
	return &c, nil
}

func (r *ConversationRepository) ListConversations(ctx context.Context, userID common.UUID) ([]messaging.ConversationView, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT c.id, c.participant_a, c.participant_b, c.job_id, c.created_at, c.updated_at,
			u.id, u.name, u.role,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.is_read = FALSE),
			COALESCE((SELECT m.body FROM messages m WHERE m.conversation_id = c.id ORDER BY m.created_at DESC LIMIT 1), ''),
			(SELECT m.created_at FROM messages m WHERE m.conversation_id = c.id ORDER BY m.created_at DESC LIMIT 1)
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.participant_a = $1 THEN c.participant_b ELSE c.participant_a END
		WHERE c.participant_a = $1 OR c.participant_b = $1
		ORDER BY c.updated_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list conversations", err)
	}
	defer rows.Close()
	var items []messaging.ConversationView
	for rows.Next() {
		var view messaging.ConversationView
		var lastAt sql.NullTime
		if err := rows.Scan(&view.Conversation.ID, &view.Conversation.ParticipantA, &view.Conversation.ParticipantB,
			&view.Conversation.JobID, &view.Conversation.CreatedAt, &view.Conversation.UpdatedAt,
			&view.CounterpartID, &view.CounterpartName, &view.CounterpartRole,
			&view.UnreadCount, &view.LastMessage, &lastAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan conversation", err)
		}
		if lastAt.Valid {
			at := lastAt.Time
			view.LastMessageAt = &at
		}
		items = append(items, view)
	}
	return items, nil
}

func (r *ConversationRepository) AppendMessage(ctx context.Context, conversationID, senderID common.UUID, body string) (*messaging.Message, error) {
	msg := messaging.Message{
		ID:             common.NewUUID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO messages (id, conversation_id, sender_id, body, is_read, created_at)
			VALUES ($1, $2, $3, $4, FALSE, $5)`, msg.ID, msg.ConversationID, msg.SenderID, msg.Body, msg.CreatedAt); err != nil {
			return common.NewError(common.CodeInternal, "failed to insert message", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE conversations SET updated_at = $1 WHERE id = $2`, msg.CreatedAt, conversationID); err != nil {
			return common.NewError(common.CodeInternal, "failed to touch conversation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID common.UUID, limit, offset int) ([]messaging.Message, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, conversation_id, sender_id, body, is_read, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`, conversationID, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list messages", err)
	}
	defer rows.Close()
	var items []messaging.Message
	for rows.Next() {
		var msg messaging.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan message", err)
		}
		items = append(items, msg)
	}
	return items, nil
}

func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, readerID common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE`,
		conversationID, readerID); err != nil {
		return common.NewError(common.CodeInternal, "failed to mark messages read", err)
	}
	return nil
}
