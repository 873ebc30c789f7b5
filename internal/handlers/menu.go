package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

// Menu godoc
// @Summary     Navigation menu for the caller's role
// @Description The menu is selected by a closed role enum; unknown roles fall back to the guest menu.
// @Tags        menu
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.MenuResponse
// @Router      /menu [get]
func Menu(c *gin.Context) {
	role := currentRole(c)
	c.JSON(http.StatusOK, models.MenuResponse{
		Role:  string(role),
		Items: models.MenuFor(role),
	})
}
