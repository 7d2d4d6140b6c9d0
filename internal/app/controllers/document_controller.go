package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/services"
	"github.com/darulhuda/ppdb-portal/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentController serves the composed admission form for one registration,
// as preview JSON and as a downloadable workbook.
type DocumentController struct {
	registrationService *services.RegistrationService
	settingsService     *services.SettingsService
	composerService     *services.ComposerService
	exportService       *services.ExportService
	logger              zerolog.Logger
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(
	registrationService *services.RegistrationService,
	settingsService *services.SettingsService,
	composerService *services.ComposerService,
	exportService *services.ExportService,
	logger zerolog.Logger,
) *DocumentController {
	return &DocumentController{
		registrationService: registrationService,
		settingsService:     settingsService,
		composerService:     composerService,
		exportService:       exportService,
		logger:              logger,
	}
}

// Preview returns the composed document
// @Summary Preview the admission form
// @Description Composes the printable admission form for one registration: letterhead, sections, checklist, and signature block.
// @Tags documents
// @Produce json
// @Param id path string true "Registration number"
// @Success 200 {object} dto.APIResponse{data=models.Document}
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Router /registrations/{id}/document [get]
func (c *DocumentController) Preview(ctx *gin.Context) {
	record, err := c.registrationService.Get(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc := c.composerService.Compose(record, c.settingsService.Get(), time.Now())
	ctx.JSON(http.StatusOK, newAPIResponse(doc))
}

// Export downloads the admission form as a workbook
// @Summary Export the admission form
// @Description Renders the composed admission form as an xlsx download. A failed export is retryable.
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Registration number"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 502 {object} dto.ErrorResponse "Export failed"
// @Router /registrations/{id}/document/export [get]
func (c *DocumentController) Export(ctx *gin.Context) {
	record, err := c.registrationService.Get(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data, err := c.exportService.ExportDocument(record, c.settingsService.Get(), time.Now())
	if err != nil {
		c.logger.Error().Err(err).Str("id", record.ID).Msg("Admission form export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.DocumentFilename(record)))
	ctx.Data(http.StatusOK, xlsxContentType, data)
}
