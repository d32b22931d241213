package messaging

import (
	"time"

	"studentgigs/internal/common"
)

// Conversation is keyed by an unordered participant pair: ParticipantA always
// holds the lexically smaller id. Roles are looked up per participant at read
// time instead of being baked into column names.
type Conversation struct {
	ID           common.UUID  `json:"id"`
	ParticipantA common.UUID  `json:"participant_a"`
	ParticipantB common.UUID  `json:"participant_b"`
	JobID        *common.UUID `json:"job_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NormalizePair orders two participant ids into their storage slots.
func NormalizePair(a, b common.UUID) (common.UUID, common.UUID) {
	if b < a {
		return b, a
	}
	return a, b
}

func (c Conversation) HasParticipant(userID common.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

type Message struct {
	ID             common.UUID `json:"id"`
	ConversationID common.UUID `json:"conversation_id"`
	SenderID       common.UUID `json:"sender_id"`
	Body           string      `json:"body"`
	IsRead         bool        `json:"is_read"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ConversationView is one row of the inbox listing.
type ConversationView struct {
	Conversation    Conversation `json:"conversation"`
	CounterpartID   common.UUID  `json:"counterpart_id"`
	CounterpartName string       `json:"counterpart_name"`
	CounterpartRole string       `json:"counterpart_role"`
	UnreadCount     int          `json:"unread_count"`
	LastMessage     string       `json:"last_message,omitempty"`
	LastMessageAt   *time.Time   `json:"last_message_at,omitempty"`
}
