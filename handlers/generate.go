package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legalease/legalease/backend/go-services/internal/document/service"
	"github.com/legalease/legalease/backend/go-services/internal/form"
	"github.com/legalease/legalease/backend/go-services/internal/llm"
	"github.com/legalease/legalease/backend/go-services/internal/registry"
	"github.com/legalease/legalease/backend/go-services/pkg/logger"
	"github.com/legalease/legalease/backend/go-services/pkg/metrics"
	"github.com/legalease/legalease/backend/go-services/pkg/middleware"
)

// GenerateHandler drives the document generation form.
type GenerateHandler struct {
	drafter llm.Drafter
	forms   *form.Manager
	stores  *service.Manager
}

func NewGenerateHandler(drafter llm.Drafter, forms *form.Manager, stores *service.Manager) *GenerateHandler {
	return &GenerateHandler{drafter: drafter, forms: forms, stores: stores}
}

// Register wires the generation routes.
func (h *GenerateHandler) Register(r *gin.Engine) {
	r.GET("/api/document-types", h.DocumentTypes)
	r.POST("/api/generate", h.Generate)
}

// DocumentTypes lists the supported types and their required fields, in the
// order the form should present them.
func (h *GenerateHandler) DocumentTypes(c *gin.Context) {
	out := make([]map[string]interface{}, 0)
	for _, t := range registry.Types() {
		out = append(out, map[string]interface{}{
			"docType": string(t),
			"fields":  registry.Fields(t),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Generate fills the caller's form session from the request body, validates
// it and runs one generation. The body carries docType, optional language
// and filename, and the schema fields as flat string values.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.GenerationRequests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	docType := req["docType"]
	if docType == "" {
		metrics.GenerationRequests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "docType is required"})
		return
	}

	clientID := middleware.ClientID(c)
	sess := h.forms.Get(clientID)

	if err := sess.SetDocType(registry.DocumentType(docType)); err != nil {
		metrics.GenerationRequests.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document type"})
		return
	}
	sess.SetLanguage(req["language"])
	sess.SetFilename(req["filename"])
	// each request carries the full field set; omitted fields reset so a
	// value entered by another caller sharing the client id never leaks in
	for _, f := range registry.Fields(registry.DocumentType(docType)) {
		if err := sess.SetField(f, req[f]); err != nil {
			metrics.GenerationRequests.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	store, err := h.stores.Get(clientID)
	if err != nil {
		logger.Errorf("document store: %v", err)
		metrics.GenerationRequests.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate document"})
		return
	}

	text, doc, err := sess.Submit(c.Request.Context(), h.drafter, store)
	if err != nil {
		var mfe *form.MissingFieldError
		switch {
		case errors.As(err, &mfe):
			metrics.GenerationRequests.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": mfe.Error(), "field": mfe.Field})
		case errors.Is(err, form.ErrGenerationInFlight):
			metrics.GenerationRequests.WithLabelValues("busy").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "a generation is already in progress"})
		default:
			logger.Errorf("generate for %s: %v", clientID, err)
			metrics.GenerationRequests.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate document"})
		}
		return
	}

	metrics.GenerationRequests.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"generatedText": text,
		"document": gin.H{
			"id":        doc.ID,
			"filename":  doc.Filename,
			"createdAt": doc.CreatedAt,
			"date":      doc.DisplayDate(),
		},
	})
}
