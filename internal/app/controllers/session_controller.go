// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/app/services"
	"github.com/darulhuda/ppdb-portal/internal/middleware"
)

// SessionController handles the applicant form-session lifecycle
type SessionController struct {
	sessionService *services.SessionService
	logger         zerolog.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService, logger zerolog.Logger) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Start opens a form session
// @Summary Start a form session
// @Description Opens a new admission form session for the chosen institution. Rejected while the intake window is closed.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Chosen institution"
// @Success 201 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown institution"
// @Failure 403 {object} dto.ErrorResponse "Intake closed"
// @Router /sessions [post]
func (c *SessionController) Start(ctx *gin.Context) {
	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid session start payload")
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	session, err := c.sessionService.Start(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newAPIResponse(session))
}

// Get returns the working state of a session
// @Summary Get session state
// @Description Returns the form's working state, per-slot conversion status, and current view.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	session, err := c.sessionService.Get(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAPIResponse(session))
}

// UpdateFields applies a partial field update
// @Summary Update form fields
// @Description Applies a partial update to the working state. Changing the birth date recomputes the derived age; the age itself is not writable.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.FieldUpdateRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid field value"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/fields [patch]
func (c *SessionController) UpdateFields(ctx *gin.Context) {
	var req dto.FieldUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid field update payload")
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	session, err := c.sessionService.UpdateFields(ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAPIResponse(session))
}

// UploadDocument attaches a file to one document slot
// @Summary Upload a document
// @Description Converts the uploaded file into its inline representation and stores it in the named slot. Accepted formats: PDF, JPEG, PNG; 2MB limit.
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param slot path string true "Document slot" Enums(akta, kk, ijazah, foto, ktpOrtu, kipPip)
// @Param file formData file true "Document file"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown slot or missing file"
// @Failure 422 {object} dto.ErrorResponse "Conversion failed"
// @Router /sessions/{id}/documents/{slot} [post]
func (c *SessionController) UploadDocument(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	slot := models.DocumentSlot(ctx.Param("slot"))
	session, err := c.sessionService.UploadDocument(ctx.Param("id"), slot, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAPIResponse(session))
}

// Submit finalizes the session into an applicant record
// @Summary Submit the form
// @Description Validates the working state and creates the applicant record. Refused while required fields are missing or a conversion is in flight.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} dto.APIResponse{data=models.ApplicantRecord}
// @Failure 400 {object} dto.ErrorResponse "Required fields missing"
// @Failure 409 {object} dto.ErrorResponse "Conversion pending or already submitting"
// @Router /sessions/{id}/submit [post]
func (c *SessionController) Submit(ctx *gin.Context) {
	record, err := c.sessionService.Submit(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("id", record.ID).Msg("Registration submitted")
	ctx.JSON(http.StatusCreated, newAPIResponse(record))
}

// Cancel discards the session
// @Summary Cancel the form
// @Description Discards the session's working state. Nothing is persisted.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 "Session discarded"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [delete]
func (c *SessionController) Cancel(ctx *gin.Context) {
	if err := c.sessionService.Cancel(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
