// Package handlers contains the gin handlers for the portal, analysis, chat,
// comparison, and account surfaces.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/domain"
)

// respondError maps domain errors onto HTTP statuses. Empty-input conditions
// surface as warnings the pages render directly; nothing is swallowed into an
// empty success.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSubscriptionRequired):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoDocuments),
		errors.Is(err, domain.ErrNoListings),
		errors.Is(err, domain.ErrNoTenants):
		c.JSON(http.StatusOK, gin.H{"warning": err.Error()})
	default:
		// Storage or language-model failure
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
