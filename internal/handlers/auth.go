package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/config"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/middleware"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/supabase"
)

type AuthHandler struct {
	cfg      *config.Config
	client   *supabase.Client
	sessions *middleware.SessionCache
}

func NewAuthHandler(cfg *config.Config, client *supabase.Client, sessions *middleware.SessionCache) *AuthHandler {
	return &AuthHandler{cfg: cfg, client: client, sessions: sessions}
}

// Login godoc
// @Summary     Sign in
// @Description Delegates credential checking to the hosted auth service and sets the session cookie used by the route guard.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.SessionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "email and password are required"})
		return
	}

	session, err := h.client.SignIn(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "sign in failed", Message: err.Error()})
		return
	}

	role := models.RoleGuest
	if r, ok := session.User.UserMetadata["role"].(string); ok {
		role = models.ParseRole(r)
	}

	secure := h.cfg.Environment == "production"
	c.SetCookie(h.cfg.SessionCookieName, session.AccessToken, session.ExpiresIn, "/", "", secure, true)

	c.JSON(http.StatusOK, models.SessionResponse{
		UserID:      session.User.ID.String(),
		Email:       session.User.Email,
		Role:        string(role),
		AccessToken: session.AccessToken,
	})
}

// Logout godoc
// @Summary     Sign out
// @Description Clears the session cookie and invalidates the cached token.
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     204 "No Content"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, exists := c.Get(middleware.TokenKey); exists {
		h.sessions.Delete(fmt.Sprint(token))
	}
	secure := h.cfg.Environment == "production"
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", secure, true)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary     Current identity
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SessionResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{
		UserID: userID.String(),
		Role:   string(currentRole(c)),
	})
}
