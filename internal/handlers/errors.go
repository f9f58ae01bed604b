package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/expense-tracker/internal/services"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps service errors onto status codes. Unexpected errors are
// attached to the gin context for the request logger and never echoed.
func respondError(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, services.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Password must be at most 72 bytes"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "All fields are required"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "User already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid credentials"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid Token"})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: internalMessage})
	}
}

func badRequest(c *gin.Context, err error) {
	c.Error(err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Message: "request body too large"})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
}
