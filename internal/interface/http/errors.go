package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/application"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
	"github.com/oksasatya/gadget-store-api/pkg/response"
	"github.com/oksasatya/gadget-store-api/pkg/validation"
)

const msgFileTooLarge = "File too large"

// statusFor maps an application error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, helpers.ErrTooLarge):
		return http.StatusBadRequest
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError renders err in the response envelope. Unexpected failures are
// logged and surfaced as 500 with their message in the error field.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	var appErr *application.Error
	switch {
	case errors.As(err, &appErr):
		response.Error[any](c, status, appErr.Msg, nil)
	case status == http.StatusBadRequest:
		response.Error[any](c, status, msgFileTooLarge, nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, status, "Internal server error", err.Error())
	}
}

// writeBindError answers a payload that could not be decoded or validated.
func writeBindError(c *gin.Context, message string, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		response.Error[any](c, http.StatusBadRequest, msgFileTooLarge, nil)
		return
	}
	response.Error[any](c, http.StatusBadRequest, message, validation.ToDetails(err))
}
