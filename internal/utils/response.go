// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", errors)
}

func BadGatewayResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Upstream service unavailable"
	}
	ErrorResponse(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// RespondError maps a taxonomy error to its HTTP status. resource names
// what was being looked up, for 404 messages.
func RespondError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		UnauthorizedResponse(c, "")
	case errors.Is(err, apperrors.ErrForbidden):
		ForbiddenResponse(c, "")
	case errors.Is(err, apperrors.ErrNotFound):
		NotFoundResponse(c, resource)
	case errors.Is(err, apperrors.ErrValidation):
		ValidationErrorResponse(c, GetValidationErrors(err))
	case errors.Is(err, apperrors.ErrInvalidFileType):
		ErrorResponse(c, http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error(), nil)
	case errors.Is(err, apperrors.ErrFileTooLarge):
		ErrorResponse(c, http.StatusBadRequest, "FILE_TOO_LARGE", err.Error(), nil)
	case errors.Is(err, apperrors.ErrGenerationFailed):
		ErrorResponse(c, http.StatusBadGateway, "GENERATION_FAILED", "Content generation failed", nil)
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		BadGatewayResponse(c, "")
	default:
		logrus.WithError(err).Error("Unhandled error")
		InternalErrorResponse(c, "")
	}
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}
