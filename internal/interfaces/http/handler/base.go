package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cahoico/storefront/internal/domain/shared"
	"github.com/cahoico/storefront/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving the status from the
// error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// HandleError maps the storefront error taxonomy onto HTTP responses:
// client-side validation to 400, local state violations to their mapped
// status, shop rejections to 422, unreachable or failing shop to 502.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var validationErr *shared.ValidationError
	var domainErr *shared.DomainError
	var backendErr *shared.BackendError
	var networkErr *shared.NetworkError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(validationErr.Message, []dto.ValidationDetail{
			{Field: validationErr.Field, Message: validationErr.Message},
		}))

	case errors.As(err, &domainErr):
		switch domainErr.Code {
		case "NOT_FOUND":
			h.NotFound(c, domainErr.Message)
		case "INVALID_INPUT":
			h.BadRequest(c, domainErr.Message)
		case "INVALID_STATE":
			h.ErrorWithCode(c, dto.ErrCodeInvalidState, domainErr.Message)
		default:
			// Typed rejection from the shop API
			h.ErrorWithCode(c, dto.ErrCodeShopRejected, domainErr.Message)
		}

	case errors.As(err, &backendErr):
		h.ErrorWithCode(c, dto.ErrCodeUpstreamBackend, backendErr.Message)

	case errors.As(err, &networkErr):
		h.ErrorWithCode(c, dto.ErrCodeUpstreamNetwork, networkErr.Error())

	default:
		h.ErrorWithCode(c, dto.ErrCodeInternal, "internal error")
	}
}
