package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hotel-backend/internal/shared/apperror"
	"hotel-backend/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	ErrorWithDetails(c, statusCode, code, message, nil)
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, apperror.CodeValidationFailed, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// FromError writes the envelope matching err.
// ozzo validation errors become 400 with per-field details; unknown errors become 500
// and are logged, never echoed.
func FromError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		ErrorWithDetails(c, http.StatusBadRequest, apperror.CodeValidationFailed, "Invalid request", verrs)
		return
	}

	if appErr, ok := apperror.As(err); ok {
		if appErr.Kind == apperror.KindInternal {
			logger.Error("internal error", err)
			ErrorResponse(c, http.StatusInternalServerError, appErr.Code, "Internal server error")
			return
		}
		var details interface{}
		if len(appErr.Details) > 0 {
			details = appErr.Details
		}
		ErrorWithDetails(c, appErr.HTTPStatus(), appErr.Code, appErr.Message, details)
		return
	}

	logger.Error("unhandled error", err)
	ErrorResponse(c, http.StatusInternalServerError, apperror.CodeInternal, "Internal server error")
}
