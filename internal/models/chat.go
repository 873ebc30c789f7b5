package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one message in an order conversation. The conversation id
// is the order id, so a thread always has exactly two parties.
type ChatMessage struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	RecipientID    uuid.UUID
	Body           string
	CreatedAt      time.Time
}
