package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Registration errors
var (
	ErrRecordNotFound     = errors.New("applicant record not found")
	ErrIDGenerationFailed = errors.New("could not allocate a unique registration id")
)

// Form session errors
var (
	ErrSessionNotFound     = errors.New("form session not found")
	ErrSessionSubmitting   = errors.New("form session submission already in progress")
	ErrSessionClosed       = errors.New("form session already completed or cancelled")
	ErrConversionPending   = errors.New("document conversion still in progress")
	ErrConversionFailed    = errors.New("document conversion failed")
	ErrUnknownDocumentSlot = errors.New("unknown document slot")
	ErrIntakeClosed        = errors.New("intake window is not open")
)

// Persistence errors
var (
	// ErrStateCorrupt marks a persisted blob that is present but not parseable.
	// Callers surface it as "state unavailable, starting fresh" rather than crashing.
	ErrStateCorrupt       = errors.New("persisted state is corrupt")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Flow errors
var (
	ErrInvalidTransition = errors.New("transition not allowed from current view")
)

// Document errors
var (
	ErrExportFailed = errors.New("document export failed")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}
