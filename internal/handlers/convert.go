package handlers

import (
	"encoding/json"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

func toOrderResponse(order *models.Order) models.OrderResponse {
	response := models.OrderResponse{
		ID:          order.ID.String(),
		ClientID:    order.ClientID.String(),
		Status:      string(order.Status),
		Description: order.Description,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if order.ArtistID.Valid {
		response.ArtistID = order.ArtistID.UUID.String()
	}
	if order.Size.Valid {
		response.Size = order.Size.String
	}
	if order.Style.Valid {
		response.Style = order.Style.String
	}
	if order.Tone.Valid {
		response.Tone = order.Tone.String
	}
	if order.Material.Valid {
		response.Material = order.Material.String
	}
	if order.FrameSize.Valid {
		response.FrameSize = order.FrameSize.String
	}
	if order.Background.Valid {
		response.Background = order.Background.String
	}
	if order.Price.Valid {
		price := order.Price.Float64
		response.Price = &price
	}
	if len(order.Invoice) > 0 {
		var invoice models.Invoice
		if err := json.Unmarshal(order.Invoice, &invoice); err == nil {
			response.Invoice = &invoice
		}
	}
	if order.CompletedAt.Valid {
		completedAt := order.CompletedAt.Time
		response.CompletedAt = &completedAt
	}
	return response
}

func toCommentResponse(comment *models.Comment) models.CommentResponse {
	return models.CommentResponse{
		ID:        comment.ID.String(),
		OrderID:   comment.OrderID.String(),
		AuthorID:  comment.AuthorID.String(),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

func toAttachmentResponse(attachment *models.Attachment) models.AttachmentResponse {
	response := models.AttachmentResponse{
		ID:        attachment.ID.String(),
		OrderID:   attachment.OrderID.String(),
		AuthorID:  attachment.AuthorID.String(),
		URL:       attachment.URL,
		CreatedAt: attachment.CreatedAt,
	}
	if attachment.Filename.Valid {
		response.Filename = attachment.Filename.String
	}
	return response
}

func toChatMessageResponse(message *models.ChatMessage) models.ChatMessageResponse {
	return models.ChatMessageResponse{
		ID:             message.ID.String(),
		ConversationID: message.ConversationID.String(),
		SenderID:       message.SenderID.String(),
		RecipientID:    message.RecipientID.String(),
		Body:           message.Body,
		CreatedAt:      message.CreatedAt,
	}
}
