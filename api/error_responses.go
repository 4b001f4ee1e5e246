package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API.
type ErrorCode string

const (
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrorCodeRefreshFailed    ErrorCode = "REFRESH_FAILED"
)

// APIError is the standardized error response body.
type APIError struct {
	Success   bool              `json:"success"`
	Code      ErrorCode         `json:"code"`
	Message   string            `json:"message"`
	Errors    []ValidationError `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// SendError sends a standardized error response.
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, fieldErrors ...ValidationError) {
	resp := &APIError{
		Success: false,
		Code:    code,
		Message: message,
		Errors:  fieldErrors,
	}
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			resp.RequestID = id
		}
	}
	c.JSON(statusCode, resp)
}

// SendValidationError sends a 422 with the field-level validation errors.
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendError(c, http.StatusUnprocessableEntity, ErrorCodeValidationFailed,
		"Request validation failed", result.Errors...)
}

// SendInternalError sends a generic 500. The underlying error is logged by
// the caller, never sent to the client.
func SendInternalError(c *gin.Context, operation string) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation)
}
