package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/run-trainer/internal/service"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPlanAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrRunNotFound),
		errors.Is(err, service.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrDuplicateRun),
		errors.Is(err, service.ErrStravaNotConnected),
		errors.Is(err, service.ErrStravaState):
		return http.StatusConflict
	case errors.Is(err, service.ErrStorageUnavailable),
		errors.Is(err, service.ErrStravaDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the error body for err. Internal errors are attached to
// the gin context for the access log and hidden from the client.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		abortWithError(c, code, "An unexpected error occurred")
		return
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(code, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}
	abortWithError(c, code, err.Error())
}

// bindingError reports a request body or query that failed binding.
func bindingError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
}
