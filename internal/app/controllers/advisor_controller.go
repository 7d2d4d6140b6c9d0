package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/app/services"
	"github.com/darulhuda/ppdb-portal/internal/middleware"
	"github.com/darulhuda/ppdb-portal/internal/pkg/advisor"
)

// reviewRequest names the session whose draft gets reviewed
type reviewRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// AdvisorController exposes the advisory-text integrations
type AdvisorController struct {
	advisorService advisor.AdvisorService
	sessionService *services.SessionService
	logger         zerolog.Logger
}

// NewAdvisorController creates a new AdvisorController
func NewAdvisorController(advisorService advisor.AdvisorService, sessionService *services.SessionService, logger zerolog.Logger) *AdvisorController {
	return &AdvisorController{
		advisorService: advisorService,
		sessionService: sessionService,
		logger:         logger,
	}
}

// Review returns advisory feedback on a draft submission
// @Summary Review a draft
// @Description Asks the advisory service for feedback on a session's working state. Never fails: unavailability returns a static fallback message.
// @Tags advisor
// @Accept json
// @Produce json
// @Param request body reviewRequest true "Session to review"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResponse}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /advisor/review [post]
func (c *AdvisorController) Review(ctx *gin.Context) {
	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Session id is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	draft, err := c.sessionService.Draft(req.SessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	feedback := c.advisorService.ReviewSubmission(ctx.Request.Context(), draft)
	ctx.JSON(http.StatusOK, newAPIResponse(dto.ReviewResponse{Feedback: feedback}))
}

// Placement suggests a grade/section for an applicant
// @Summary Suggest a placement
// @Description Asks the advisory service for a grade/section recommendation for (institution, age).
// @Tags advisor
// @Accept json
// @Produce json
// @Param request body dto.PlacementRequest true "Institution and age"
// @Success 200 {object} dto.APIResponse{data=dto.PlacementResponse}
// @Failure 502 {object} dto.ErrorResponse "Advisory service unavailable"
// @Router /advisor/placement [post]
func (c *AdvisorController) Placement(ctx *gin.Context) {
	var req dto.PlacementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Institution and age are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	if !req.Institution.Valid() {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown institution").WithField("institution")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	suggestion, err := c.advisorService.SuggestPlacement(ctx.Request.Context(), string(req.Institution), req.Age)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Placement suggestion unavailable")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, advisor.FallbackMessage)
		ctx.JSON(http.StatusBadGateway, dto.NewErrorResponse(detail))
		return
	}

	ctx.JSON(http.StatusOK, newAPIResponse(dto.PlacementResponse{
		Suggestion: suggestion.Suggestion,
		Reason:     suggestion.Reason,
	}))
}
