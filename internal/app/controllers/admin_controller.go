package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/app/services"
	"github.com/darulhuda/ppdb-portal/internal/middleware"
)

// AdminController serves the dashboard: registration listings, the settings
// editor, and logo uploads.
type AdminController struct {
	registrationService *services.RegistrationService
	settingsService     *services.SettingsService
	exportService       *services.ExportService
	logger              zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	registrationService *services.RegistrationService,
	settingsService *services.SettingsService,
	exportService *services.ExportService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		registrationService: registrationService,
		settingsService:     settingsService,
		exportService:       exportService,
		logger:              logger,
	}
}

// ListRegistrations returns the dashboard rows
// @Summary List registrations
// @Description Returns a summary row for every applicant record, newest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RegistrationSummary}
// @Router /admin/registrations [get]
func (c *AdminController) ListRegistrations(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newAPIResponse(c.registrationService.List()))
}

// GetRegistration returns one full record
// @Summary Get a registration
// @Description Returns the full applicant record, including attached documents.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration number"
// @Success 200 {object} dto.APIResponse{data=models.ApplicantRecord}
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /admin/registrations/{id} [get]
func (c *AdminController) GetRegistration(ctx *gin.Context) {
	record, err := c.registrationService.Get(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAPIResponse(record))
}

// ExportRegistrations downloads the listing as a workbook
// @Summary Export registrations
// @Description Renders every applicant record into one xlsx listing.
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 502 {object} dto.ErrorResponse "Export failed"
// @Router /admin/registrations/export [get]
func (c *AdminController) ExportRegistrations(ctx *gin.Context) {
	records := make([]models.ApplicantRecord, 0)
	for _, summary := range c.registrationService.List() {
		record, err := c.registrationService.Get(summary.ID)
		if err != nil {
			continue
		}
		records = append(records, *record)
	}

	data, err := c.exportService.ExportRegistrations(records)
	if err != nil {
		c.logger.Error().Err(err).Msg("Registration listing export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := "Pendaftar_PPDB_" + time.Now().Format("2006-01-02") + ".xlsx"
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, xlsxContentType, data)
}

// GetSettings returns the full settings document
// @Summary Get settings
// @Description Returns the stored system settings, including logos.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.SystemSettings}
// @Router /admin/settings [get]
func (c *AdminController) GetSettings(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newAPIResponse(c.settingsService.Get()))
}

// UpdateSettings overwrites the academic year and intake status
// @Summary Update settings
// @Description Overwrites the academic year and intake status. Logos are kept; the change takes effect immediately for new sessions.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "New settings"
// @Success 200 {object} dto.APIResponse{data=models.SystemSettings}
// @Failure 400 {object} dto.ErrorResponse "Unknown intake status"
// @Router /admin/settings [put]
func (c *AdminController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid settings payload")
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	settings, err := c.settingsService.Update(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAPIResponse(settings))
}

// UploadLogo stores a logo image
// @Summary Upload a logo
// @Description Stores an uploaded image into one of the three logo slots (app, mts, ma).
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param slot path string true "Logo slot" Enums(app, mts, ma)
// @Param file formData file true "Logo image"
// @Success 200 {object} dto.APIResponse{data=models.SystemSettings}
// @Failure 400 {object} dto.ErrorResponse "Unknown slot or unsupported file"
// @Router /admin/settings/logos/{slot} [post]
func (c *AdminController) UploadLogo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	slot := models.LogoSlot(ctx.Param("slot"))
	settings, err := c.settingsService.SetLogo(ctx.Request.Context(), slot, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAPIResponse(settings))
}
