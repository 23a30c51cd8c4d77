package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses with the standard
// error envelope.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		code := dto.ErrorCode(customErr.Code)
		if code == "" {
			code = codeForStatus(statusForCustomError(customErr))
		}
		c.JSON(statusForCustomError(customErr), dto.NewErrorResponse(
			dto.NewErrorDetail(code, customErr.Message),
		))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "An account with this email already exists")
	case errors.Is(err, apperrors.ErrUsernameTaken):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "This username is already taken")
	case errors.Is(err, apperrors.ErrProfileAlreadySet):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Profile has already been set up")
	case errors.Is(err, apperrors.ErrProfileNotSet):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Complete profile setup first")
	case errors.Is(err, apperrors.ErrPinnedPostNotOwned):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "You can only pin your own posts")
	case errors.Is(err, apperrors.ErrCannotFollowSelf):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "You cannot follow yourself")
	case errors.Is(err, apperrors.ErrPostUnchanged):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Edit must change the post")
	case errors.Is(err, apperrors.ErrEmptyContent):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Content must not be empty")
	case errors.Is(err, apperrors.ErrJoinCodeRequired):
		respond(c, http.StatusBadRequest, dto.ErrorCodeJoinCodeRequired, "A join code is required for private tribes")
	case errors.Is(err, apperrors.ErrWrongJoinCode):
		respond(c, http.StatusForbidden, dto.ErrorCodeWrongJoinCode, "Wrong join code")
	case errors.Is(err, apperrors.ErrNotTribeMember):
		respond(c, http.StatusForbidden, dto.ErrorCodeNotTribeMember, "You are not a member of this tribe")
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrTribeNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleValidationError converts request binding failures into the standard
// error envelope.
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func statusForCustomError(err *apperrors.CustomError) int {
	switch {
	case errors.Is(err.Err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err.Err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err.Err, apperrors.ErrConflict), errors.Is(err.Err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func codeForStatus(status int) dto.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return dto.ErrorCodeResourceNotFound
	case http.StatusForbidden:
		return dto.ErrorCodeForbidden
	case http.StatusConflict:
		return dto.ErrorCodeResourceAlreadyExists
	default:
		return dto.ErrorCodeValidationFailed
	}
}
