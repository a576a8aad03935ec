package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TrashMob-eco/adopt-engine/internal/app/models/dto"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/apperrors"
)

// HandleAPIError maps typed application errors to HTTP responses. Business
// failures keep their display-ready message; anything unrecognized becomes a
// generic 500 without leaking internals.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAdoptionNotFound),
		errors.Is(err, apperrors.ErrAreaNotFound),
		errors.Is(err, apperrors.ErrLinkNotFound),
		errors.Is(err, apperrors.ErrCommunityNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)
	case errors.Is(err, apperrors.ErrInvalidState):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidState, err)
	case errors.Is(err, apperrors.ErrDuplicateApplication):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateApplication, err)
	case errors.Is(err, apperrors.ErrAreaNotAvailable):
		respond(c, http.StatusConflict, dto.ErrorCodeAreaNotAvailable, err)
	case errors.Is(err, apperrors.ErrTeamInvalid):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeTeamInvalid, err)
	case errors.Is(err, apperrors.ErrAreaInvalid):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeAreaInvalid, err)
	case errors.Is(err, apperrors.ErrEventInvalid):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeEventInvalid, err)
	case errors.Is(err, apperrors.ErrDuplicateLink):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateLink, err)
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, err)
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, err error) {
	message := err.Error()

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
