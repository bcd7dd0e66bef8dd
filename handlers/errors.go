package handlers

import (
	"errors"
	"net/http"

	"github.com/DDismyname28/home-portal/services/catalog"
	"github.com/DDismyname28/home-portal/services/request"
	"github.com/DDismyname28/home-portal/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service-layer sentinel errors to HTTP codes. Anything
// unrecognized is treated as an internal failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, request.ErrValidation),
		errors.Is(err, catalog.ErrValidation),
		errors.Is(err, user.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, request.ErrPermissionDenied),
		errors.Is(err, catalog.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, request.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, request.ErrConflict),
		errors.Is(err, user.ErrDuplicateAccount):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		zap.L().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "Something went wrong, please try again"
	}
	c.JSON(status, gin.H{"success": false, "message": msg})
}
