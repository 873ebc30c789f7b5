package services

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/apperrors"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
)

// ChatStore is the persistence surface for conversations.
type ChatStore interface {
	InsertChatMessage(messageID, conversationID, senderID, recipientID uuid.UUID, body string) (*models.ChatMessage, error)
	ListChatMessages(conversationID uuid.UUID) ([]models.ChatMessage, error)
}

type ChatService struct {
	store ChatStore
	bus   realtime.Publisher
	log   *zap.SugaredLogger
}

func NewChatService(store ChatStore, bus realtime.Publisher, log *zap.SugaredLogger) *ChatService {
	return &ChatService{store: store, bus: bus, log: log}
}

// Send persists a message and pushes it to both parties.
func (s *ChatService) Send(conversationID, senderID, recipientID uuid.UUID, body string) (*models.ChatMessage, error) {
	if senderID == uuid.Nil {
		return nil, apperrors.ErrAuthRequired
	}
	if recipientID == uuid.Nil {
		return nil, apperrors.Validation("recipient is required")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.Validation("message body is required")
	}

	message, err := s.store.InsertChatMessage(uuid.New(), conversationID, senderID, recipientID, body)
	if err != nil {
		return nil, apperrors.Store("send chat message", err)
	}

	event := realtime.Event{
		Type: realtime.EventChatMessage,
		Data: realtime.ChatPayload(message),
	}
	s.bus.PublishToUser(recipientID, event)
	s.bus.PublishToUser(senderID, event)
	return message, nil
}

// History returns a conversation's messages oldest first.
func (s *ChatService) History(conversationID uuid.UUID) ([]models.ChatMessage, error) {
	messages, err := s.store.ListChatMessages(conversationID)
	if err != nil {
		return nil, apperrors.Store("list chat messages", err)
	}
	return messages, nil
}
