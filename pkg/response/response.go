package response

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"social-service/pkg/apperrors"
)

// Body is the envelope every endpoint answers with.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{Success: true, Message: message, Data: data})
}

// Error converts a service error into the envelope plus its mapped status.
// The error is logged here so handlers don't have to.
func Error(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	if status >= 500 {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	} else {
		slog.Info("request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, Body{Success: false, Message: apperrors.Message(err)})
}
