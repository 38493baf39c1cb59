package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/services"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// Response is the envelope every analytics endpoint returns. A true
// success flag guarantees data is present and internally consistent;
// partial results are never returned.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and response functionality for all handlers
type BaseHandler struct {
	logger *slog.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// RespondWithData sends a success envelope.
func (h *BaseHandler) RespondWithData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error envelope and logs the error with context.
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.Error(message,
			"error", err,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	} else {
		h.logger.Warn(message,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Validation problems surface with their own message; store and compute
// failures surface a generic message with the detail kept in the logs.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case services.IsInvalidRequest(err):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
	case services.IsStoreUnavailable(err):
		h.RespondWithError(c, http.StatusServiceUnavailable, "content store unavailable", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "failed to generate report", err)
	}
}
