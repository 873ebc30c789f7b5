package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/apperrors"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/middleware"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

// respondError maps domain errors onto HTTP statuses. Store failures come
// back as 502 with the cause preserved in the message, never swallowed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Message: err.Error()})
	case errors.Is(err, apperrors.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "invalid status transition", Message: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	case apperrors.IsStore(err):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "store failure", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}

// currentUserID reads the authenticated user id placed by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func currentRole(c *gin.Context) models.Role {
	roleStr, exists := c.Get(middleware.RoleKey)
	if !exists {
		return models.RoleGuest
	}
	return models.ParseRole(roleStr.(string))
}

func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
