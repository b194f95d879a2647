package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/comparison"
	"github.com/yourhome-ai/yourhome/internal/domain"
)

// ComparisonHandler handles the tenant comparison view.
type ComparisonHandler struct {
	compare *comparison.Service
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(compare *comparison.Service) *ComparisonHandler {
	return &ComparisonHandler{compare: compare}
}

// RegisterRoutes registers comparison routes
func (h *ComparisonHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/comparison", h.Compare)
}

// Compare builds one metrics row per selected tenant
func (h *ComparisonHandler) Compare(c *gin.Context) {
	var req domain.ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Tenants) == 0 {
		c.JSON(http.StatusOK, gin.H{"rows": []domain.ComparisonRow{}, "warning": domain.ErrNoTenants.Error()})
		return
	}

	rows, err := h.compare.Compare(c.Request.Context(), req.Address, req.Tenants)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
