package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/service"
)

// PortalHandler handles listing, tenant, and document requests.
type PortalHandler struct {
	portal *service.PortalService
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(portal *service.PortalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// RegisterRoutes registers portal routes
func (h *PortalHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/listings", h.ListListings)
	r.POST("/listings", h.CreateListing)
	r.GET("/listings/:address/tenants", h.ListTenants)
	r.GET("/listings/:address/tenants/:tenant/documents", h.ListDocuments)
	r.POST("/listings/:address/tenants/:tenant/documents", h.UploadDocument)
	r.GET("/listings/:address/tenants/:tenant/categories", h.ListCategories)
	r.GET("/documents/url", h.DocumentURL)
	r.GET("/documents/view", h.ViewDocument)
}

// ListListings returns all listing addresses
func (h *PortalHandler) ListListings(c *gin.Context) {
	listings, err := h.portal.Listings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(listings) == 0 {
		c.JSON(http.StatusOK, gin.H{"listings": []string{}, "warning": domain.ErrNoListings.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// CreateListing creates a new listing
func (h *PortalHandler) CreateListing(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.portal.CreateListing(c.Request.Context(), req.Address); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": req.Address})
}

// ListTenants returns the tenants for a listing
func (h *PortalHandler) ListTenants(c *gin.Context) {
	address := c.Param("address")
	tenants, err := h.portal.Tenants(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(tenants) == 0 {
		c.JSON(http.StatusOK, gin.H{"tenants": []string{}, "warning": domain.ErrNoTenants.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

// ListDocuments returns the documents for a tenant
func (h *PortalHandler) ListDocuments(c *gin.Context) {
	textOnly := c.Query("text_only") == "1" || c.Query("text_only") == "true"
	files, err := h.portal.Documents(c.Request.Context(), c.Param("address"), c.Param("tenant"), textOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": files})
}

// ListCategories returns the document categories for a tenant
func (h *PortalHandler) ListCategories(c *gin.Context) {
	categories, err := h.portal.Categories(c.Request.Context(), c.Param("address"), c.Param("tenant"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UploadDocument stores a tenant document with its metadata
func (h *PortalHandler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	metadata := map[string]string{}
	if docType := c.PostForm("document_type"); docType != "" {
		metadata[domain.MetadataKeyDocumentType] = domain.NormalizeDocType(docType)
	}
	for _, key := range []string{domain.MetadataKeyCreditScore, domain.MetadataKeyMonthlyIncome, domain.MetadataKeyReferences} {
		if v := strings.TrimSpace(c.PostForm(key)); v != "" {
			metadata[key] = v
		}
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.portal.UploadDocument(c.Request.Context(),
		c.Param("address"), c.Param("tenant"), file.Filename, data, metadata)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// DocumentURL returns a presigned download URL for a document
func (h *PortalHandler) DocumentURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key"})
		return
	}

	// Resolve metadata first so a missing object is a NotFound, not a URL.
	if _, err := h.portal.Metadata(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}

	url, err := h.portal.SignedURL(key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ViewDocument resolves a document for inline viewing
func (h *PortalHandler) ViewDocument(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key"})
		return
	}

	view, err := h.portal.ViewDocument(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
