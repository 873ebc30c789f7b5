package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
)

type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect upgrades an authenticated request to a websocket session.
// Connecting marks the user online; the last session closing (or its
// heartbeat expiring) marks them offline.
func (h *WSHandler) Connect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	if err := realtime.ServeWS(h.hub, c.Writer, c.Request, userID); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "websocket upgrade failed", Message: err.Error()})
	}
}
