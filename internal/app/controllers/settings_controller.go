package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darulhuda/ppdb-portal/internal/app/services"
)

// SettingsController serves the public portal chrome
type SettingsController struct {
	settingsService *services.SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService *services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// Chrome returns the public portal configuration
// @Summary Public portal chrome
// @Description Returns the logos, academic year, and intake status shown on the landing page. No authentication.
// @Tags settings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ChromeResponse}
// @Router /settings [get]
func (c *SettingsController) Chrome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newAPIResponse(c.settingsService.Chrome()))
}
