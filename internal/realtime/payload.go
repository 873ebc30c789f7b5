package realtime

import (
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

// Event payloads

func OrderPayload(order *models.Order) map[string]any {
	payload := map[string]any{
		"order_id":  order.ID.String(),
		"client_id": order.ClientID.String(),
		"status":    string(order.Status),
	}
	if order.ArtistID.Valid {
		payload["artist_id"] = order.ArtistID.UUID.String()
	}
	if order.Price.Valid {
		payload["price"] = order.Price.Float64
	}
	if order.CompletedAt.Valid {
		payload["completed_at"] = order.CompletedAt.Time
	}
	return payload
}

func CommentPayload(comment *models.Comment) map[string]any {
	return map[string]any{
		"comment_id": comment.ID.String(),
		"order_id":   comment.OrderID.String(),
		"author_id":  comment.AuthorID.String(),
		"body":       comment.Body,
		"created_at": comment.CreatedAt,
	}
}

func AttachmentPayload(attachment *models.Attachment) map[string]any {
	return map[string]any{
		"attachment_id": attachment.ID.String(),
		"order_id":      attachment.OrderID.String(),
		"author_id":     attachment.AuthorID.String(),
		"url":           attachment.URL,
		"created_at":    attachment.CreatedAt,
	}
}

func PresencePayload(status *models.UserStatus) map[string]any {
	return map[string]any{
		"user_id":   status.UserID.String(),
		"is_online": status.IsOnline,
		"last_seen": status.LastSeen,
	}
}

func ChatPayload(message *models.ChatMessage) map[string]any {
	return map[string]any{
		"message_id":      message.ID.String(),
		"conversation_id": message.ConversationID.String(),
		"sender_id":       message.SenderID.String(),
		"recipient_id":    message.RecipientID.String(),
		"body":            message.Body,
		"created_at":      message.CreatedAt,
	}
}
