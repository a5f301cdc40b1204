package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendtrack/attendtrack/internal/app/models/dto"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
	"github.com/attendtrack/attendtrack/internal/pkg/auth"
	"github.com/attendtrack/attendtrack/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP status and stable error
// code. Controllers call this from every error path so the envelope is the
// same everywhere.
func HandleAPIError(c *gin.Context, err error) {
	var status int
	var code dto.ErrorCode
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		status = http.StatusBadRequest
		code = dto.ErrorCodeValidationFailed

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeInvalidCredentials
		// Never leak which part of the credential pair was wrong
		message = "invalid credentials"

	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeExpiredToken

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeInvalidToken

	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeUnauthorized

	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
		code = dto.ErrorCodeForbidden

	case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		status = http.StatusNotFound
		code = dto.ErrorCodeResourceNotFound

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrRollNumberExists),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrDepartmentMismatch),
		errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		code = dto.ErrorCodeConflict

	case errors.Is(err, apperrors.ErrIntegrity):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Data integrity fault")
		status = http.StatusInternalServerError
		code = dto.ErrorCodeInternalServer
		message = "internal server error"

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		status = http.StatusInternalServerError
		code = dto.ErrorCodeInternalServer
		message = "internal server error"
	}

	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
