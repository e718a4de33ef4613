package api

import (
	"errors"
	"net/http" // HTTP status codes

	"book_market/internal/shared"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError maps the marketplace error taxonomy to HTTP statuses. Only the
// coarse category reaches the caller; storage detail is logged, never leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, shared.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, shared.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, shared.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough money"})
	case errors.Is(err, shared.ErrAlreadySold):
		c.JSON(http.StatusConflict, gin.H{"error": "Book already sold"})
	case errors.Is(err, shared.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
	case errors.Is(err, shared.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	default:
		logrus.WithField("error", err.Error()).Error("Request failed") // Log internal detail
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
