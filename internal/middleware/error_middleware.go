package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto the standard error response.
// Validation errors keep their per-field details so the form can highlight
// the offending controls.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && errors.Is(err, apperrors.ErrValidationFailed) {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, custom.Message)
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrRecordNotFound),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrUnknownDocumentSlot),
		errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrIntakeClosed):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSessionClosed, "Pendaftaran sedang ditutup")))
	case errors.Is(err, apperrors.ErrSessionClosed):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSessionClosed, "Form session already completed or cancelled")))
	case errors.Is(err, apperrors.ErrSessionSubmitting):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSessionClosed, "Submission already in progress")))
	case errors.Is(err, apperrors.ErrConversionPending):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConversionPending, "Document conversion still in progress")))
	case errors.Is(err, apperrors.ErrConversionFailed):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConversionFailed, err.Error())))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, "Conflict")))
	case errors.Is(err, apperrors.ErrStateCorrupt):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeStateCorrupt, "Stored state unavailable")))
	case errors.Is(err, apperrors.ErrExportFailed):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExportFailed, "Export failed, please retry")))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
