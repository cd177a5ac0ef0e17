package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/interview-service/internal/services"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides request-scoped logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// log prefers the request logger installed by utils.ContextLogger.
func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	if logger, ok := utils.LookupLogger(c); ok {
		return logger
	}
	return h.logger.With(
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

func (h *BaseHandler) LogRequest(c *gin.Context, message string, fields ...interface{}) {
	h.log(c).Info(message, append(fields, "remote_addr", c.ClientIP())...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, fields ...interface{}) {
	h.log(c).LogError(err, message, fields...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, fields ...interface{}) {
	h.log(c).Warn(message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	resp := ErrorResponse{Message: message}
	if len(details) > 0 {
		resp.Details = details[0]
	}

	if statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.JSON(statusCode, resp)
}

// handleServiceError maps service errors to HTTP status codes
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	switch {
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request", err, err.Error())
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Interview session not found", err)
	case errors.Is(err, services.ErrInterviewNotCompleted):
		h.RespondWithError(c, http.StatusConflict, "Interview is not completed yet", err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "Interview is not active", err)
	case services.IsUnavailable(err):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "No questions available for this interview", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
