package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/services"
)

type PresenceHandler struct {
	presence *services.PresenceService
	hub      *realtime.Hub
}

func NewPresenceHandler(presence *services.PresenceService, hub *realtime.Hub) *PresenceHandler {
	return &PresenceHandler{presence: presence, hub: hub}
}

// GetStatus godoc
// @Summary     Get a user's presence
// @Description Point-in-time online flag, last-seen timestamp and its display bucket. Users never seen read as offline.
// @Tags        presence
// @Produce     json
// @Security    Bearer
// @Param       user_id path string true "User ID (UUID)"
// @Success     200 {object} models.PresenceResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /presence/{user_id} [get]
func (h *PresenceHandler) GetStatus(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	status, err := h.presence.Status(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PresenceResponse{
		UserID:       status.UserID.String(),
		IsOnline:     status.IsOnline,
		LastSeen:     status.LastSeen,
		LastSeenText: services.FormatLastSeen(time.Now(), status.LastSeen),
	})
}

// ListOnline godoc
// @Summary     List online users
// @Description Users with at least one open realtime session right now.
// @Tags        presence
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OnlineUsersResponse
// @Router      /online [get]
func (h *PresenceHandler) ListOnline(c *gin.Context) {
	ids := h.hub.OnlineUserIDs()
	users := make([]string, len(ids))
	for i, id := range ids {
		users[i] = id.String()
	}
	sort.Strings(users)
	c.JSON(http.StatusOK, models.OnlineUsersResponse{Users: users, Count: len(users)})
}

// MarkOnline godoc
// @Summary     Mark the caller online
// @Description Idempotent; a viewing session calls this once when it opens.
// @Tags        presence
// @Produce     json
// @Security    Bearer
// @Success     204 "No Content"
// @Router      /presence/online [post]
func (h *PresenceHandler) MarkOnline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	if err := h.presence.MarkOnline(userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkOffline godoc
// @Summary     Mark the caller offline
// @Description Clears the online flag and stamps last-seen with the call time.
// @Tags        presence
// @Produce     json
// @Security    Bearer
// @Success     204 "No Content"
// @Router      /presence/offline [post]
func (h *PresenceHandler) MarkOffline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	if err := h.presence.MarkOffline(userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Heartbeat godoc
// @Summary     Refresh the caller's presence TTL
// @Tags        presence
// @Produce     json
// @Security    Bearer
// @Success     204 "No Content"
// @Router      /presence/heartbeat [post]
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	if err := h.presence.Heartbeat(userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
