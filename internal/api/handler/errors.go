package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/tunel-admin/internal/analytics"
	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/auth"
	"github.com/cuongbtq/tunel-admin/internal/upload"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error envelope of every endpoint
type ErrorResponse struct {
	Success       bool     `json:"success"`
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// Abort writes the error envelope and stops the handler chain
func Abort(c *gin.Context, status int, errMsg, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: errMsg, Message: message})
}

// AbortUnauthorized maps a token error to its 401 response
func AbortUnauthorized(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		Abort(c, http.StatusUnauthorized, "Access token required", "Please provide a valid Bearer token in the Authorization header")
	case errors.Is(err, auth.ErrTokenExpired):
		Abort(c, http.StatusUnauthorized, "Token expired", "Your session has expired. Please login again.")
	case errors.Is(err, auth.ErrTokenRevoked):
		Abort(c, http.StatusUnauthorized, "Token revoked", "This session has been logged out. Please login again.")
	case errors.Is(err, auth.ErrTokenInvalid):
		Abort(c, http.StatusUnauthorized, "Invalid token", "The provided token is invalid.")
	default:
		Abort(c, http.StatusUnauthorized, "Authentication failed", "Unable to authenticate request.")
	}
}

// respondError maps domain, upload and auth errors to their status codes.
// Anything unrecognised is logged and reported as internal with fallback.
func (b base) respondError(c *gin.Context, err error, fallback string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:         validationErr.Message,
			MissingFields: validationErr.MissingFields,
		})
	case errors.Is(err, domain.ErrValidation):
		Abort(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrNotFound):
		Abort(c, http.StatusNotFound, b.names.singular+" not found", "")
	case errors.Is(err, domain.ErrConflict):
		Abort(c, http.StatusConflict, b.names.singular+" with this name already exists", "")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Abort(c, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
	case errors.Is(err, upload.ErrNotImage),
		errors.Is(err, upload.ErrTooLarge),
		errors.Is(err, upload.ErrTooManyFiles):
		Abort(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, upload.ErrInvalidFilename):
		Abort(c, http.StatusBadRequest, "Invalid filename", "")
	case errors.Is(err, upload.ErrNotFound):
		Abort(c, http.StatusNotFound, "Image not found", "")
	case errors.Is(err, analytics.ErrUnknownMetric):
		Abort(c, http.StatusNotFound, "Metric not found", "")
	default:
		b.logger.Error(fallback,
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(ContextKeyRequestID)),
		)
		Abort(c, http.StatusInternalServerError, fallback, "")
	}
}
