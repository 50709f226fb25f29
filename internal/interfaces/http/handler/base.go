package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workhub/gateway/internal/domain/shared"
	"github.com/workhub/gateway/internal/infrastructure/workhub"
	"github.com/workhub/gateway/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// HandleError converts domain and upstream errors to HTTP responses.
// Domain errors keep their own code, with the status derived from the
// normalized form; upstream client errors map to gateway-flavored
// codes so callers can tell our failures from the system of record's.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(dto.NormalizeErrorCode(domainErr.Code))
		c.JSON(statusCode, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	switch {
	case errors.Is(err, workhub.ErrUnavailable):
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUpstreamUnavailable, "The WorkHub API is unreachable")
	case errors.Is(err, workhub.ErrUnauthorized):
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "The WorkHub API rejected the credentials")
	case errors.Is(err, workhub.ErrForbidden):
		h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "Not allowed to view this data")
	case errors.Is(err, workhub.ErrNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Resource not found upstream")
	case errors.Is(err, workhub.ErrRejected):
		h.Error(c, http.StatusUnprocessableEntity, dto.ErrCodeUpstreamRejected, err.Error())
	case errors.Is(err, workhub.ErrRequestFailed):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamData, "The WorkHub API returned an unexpected response")
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}
