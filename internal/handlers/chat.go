package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/services"
)

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// SendMessage godoc
// @Summary     Send a chat message
// @Description Posts a message into an order conversation and pushes it to both parties in realtime.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       conversation_id path string true "Conversation ID (order UUID)"
// @Param       request body models.SendMessageRequest true "Message"
// @Success     201 {object} models.ChatMessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /chat/{conversation_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid recipient_id"})
		return
	}

	message, err := h.chat.Send(conversationID, userID, recipientID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toChatMessageResponse(message))
}

// History godoc
// @Summary     Conversation history
// @Description Returns a conversation's messages oldest first.
// @Tags        chat
// @Produce     json
// @Security    Bearer
// @Param       conversation_id path string true "Conversation ID (order UUID)"
// @Success     200 {object} models.ChatHistoryResponse
// @Router      /chat/{conversation_id}/messages [get]
func (h *ChatHandler) History(c *gin.Context) {
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	messages, err := h.chat.History(conversationID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ChatMessageResponse, len(messages))
	for i := range messages {
		responses[i] = toChatMessageResponse(&messages[i])
	}
	c.JSON(http.StatusOK, models.ChatHistoryResponse{Messages: responses})
}
