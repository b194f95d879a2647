package domain

// DocumentEvaluation is the per-document output of the screening evaluator.
// It is derived text, recomputed on every request and never persisted.
type DocumentEvaluation struct {
	Key          string `json:"key"`
	DocumentType string `json:"document_type"`
	Commentary   string `json:"commentary,omitempty"`
	Error        string `json:"error,omitempty"`
}

// TenantReport is the aggregated four-section screening report for one tenant.
type TenantReport struct {
	Address     string               `json:"address"`
	Tenant      string               `json:"tenant"`
	Evaluations []DocumentEvaluation `json:"evaluations"`
	Report      string               `json:"report"`
}

// AnalyzeDocumentRequest selects a single document for evaluation.
type AnalyzeDocumentRequest struct {
	Address  string `json:"address" binding:"required"`
	Tenant   string `json:"tenant" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// TenantReportRequest requests the aggregated report for one tenant.
type TenantReportRequest struct {
	Address string `json:"address" binding:"required"`
	Tenant  string `json:"tenant" binding:"required"`
}
