package handler

import (
	"errors"
	"net/http"

	pkgerrors "user-management-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// handleError maps a usecase error to an HTTP response using the error's
// HTTPStatus. Internal errors already carry a deliberately generic message;
// the update path is the one place the underlying failure is echoed, and the
// usecase encodes that in the message itself.
func handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	var hs pkgerrors.HTTPStatuser
	if errors.As(err, &hs) {
		status = hs.HTTPStatus()
		switch status {
		case http.StatusBadRequest:
			code = "bad_request"
		case http.StatusNotFound:
			code = "not_found"
		case http.StatusUnauthorized:
			code = "unauthorized"
		}
	}

	message := err.Error()
	if status == http.StatusInternalServerError && !errors.As(err, &hs) {
		// Unknown error types never leak their message.
		message = "an internal error occurred"
	}

	c.JSON(status, ErrorResponse{Error: code, Message: message})
}
