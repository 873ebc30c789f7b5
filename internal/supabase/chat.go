package supabase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

func (d *DatabaseClient) InsertChatMessage(messageID, conversationID, senderID, recipientID uuid.UUID, body string) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := d.db.QueryRow(`
		INSERT INTO chat_messages (id, conversation_id, sender_id, recipient_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, conversation_id, sender_id, recipient_id, body, created_at
	`, messageID, conversationID, senderID, recipientID, body).Scan(
		&message.ID, &message.ConversationID, &message.SenderID,
		&message.RecipientID, &message.Body, &message.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat message: %w", err)
	}
	return &message, nil
}

func (d *DatabaseClient) ListChatMessages(conversationID uuid.UUID) ([]models.ChatMessage, error) {
	rows, err := d.db.Query(`
		SELECT id, conversation_id, sender_id, recipient_id, body, created_at
		FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var message models.ChatMessage
		err := rows.Scan(
			&message.ID, &message.ConversationID, &message.SenderID,
			&message.RecipientID, &message.Body, &message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
