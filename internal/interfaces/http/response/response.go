package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "network-registry.backend/internal/domain/errors"
	"network-registry.backend/pkg/logger"
)

// ErrorBody is the JSON error envelope shared by every endpoint.
type ErrorBody struct {
	Code    string                    `json:"code"`
	Message string                    `json:"message"`
	Details []domainerrors.FieldError `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps err onto the error envelope. Internal failures are logged with
// their cause but only a generic message leaves the server.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.AsAppError(err)

	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr.Err),
		)
	}

	c.JSON(appErr.Status, ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// AbortError aborts the request chain with the error envelope, for middleware.
func AbortError(c *gin.Context, err error) {
	appErr := domainerrors.AsAppError(err)
	c.AbortWithStatusJSON(appErr.Status, ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
