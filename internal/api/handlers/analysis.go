package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/screening"
)

// AnalysisHandler handles AI screening requests.
type AnalysisHandler struct {
	evaluator *screening.Evaluator
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(evaluator *screening.Evaluator) *AnalysisHandler {
	return &AnalysisHandler{evaluator: evaluator}
}

// RegisterRoutes registers analysis routes
func (h *AnalysisHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/analysis/document", h.AnalyzeDocument)
	r.POST("/analysis/report", h.TenantReport)
}

// AnalyzeDocument evaluates the tenant document matching one category
func (h *AnalysisHandler) AnalyzeDocument(c *gin.Context) {
	var req domain.AnalyzeDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eval, err := h.evaluator.EvaluateCategory(c.Request.Context(), req.Address, req.Tenant, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eval)
}

// TenantReport produces the aggregated four-section report for one tenant
func (h *AnalysisHandler) TenantReport(c *gin.Context) {
	var req domain.TenantReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.evaluator.TenantReport(c.Request.Context(), req.Address, req.Tenant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
