package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"tabungan/internal/domain" // Domain errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// errorMapping pairs a domain error with its HTTP status, message and code
var errorMapping = []struct {
	err     error
	status  int
	message string
	code    string
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password", "invalid_credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "Forbidden", "forbidden"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "Invalid amount", "invalid_amount"},
	{domain.ErrInsufficientBalance, http.StatusBadRequest, "Insufficient balance", "insufficient_balance"},
	{domain.ErrNotFound, http.StatusNotFound, "Not found", "not_found"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "Invalid request", "invalid_input"},
	{domain.ErrDuplicate, http.StatusConflict, "Already exists", "duplicate"},
}

// respondError writes the JSON error for err. Unknown errors are storage faults:
// logged and surfaced as 500.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": m.message, "code": m.code, "detail": err.Error()})
			return
		}
	}
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(), // Route
		"error": err.Error(),  // Error message
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
}
