package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-nav-server/apperrors"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

// respondError writes the error envelope. Internal errors are logged and
// their details are kept out of the response body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	body := ErrorResponse{
		Error:     APIError{Code: apperrors.CodeOf(err), Message: err.Error()},
		RequestID: requestID(c),
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body.Error.Message = appErr.Message
	}

	if apperrors.IsInternal(err) || !errors.As(err, &appErr) {
		logger.Error("request failed",
			zap.String("request_id", body.RequestID),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		body.Error.Message = "internal server error"
	}

	c.AbortWithStatusJSON(status, body)
}
