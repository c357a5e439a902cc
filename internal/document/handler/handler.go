package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legalease/legalease/backend/go-services/internal/document/service"
	"github.com/legalease/legalease/backend/go-services/internal/export"
	"github.com/legalease/legalease/backend/go-services/pkg/logger"
	"github.com/legalease/legalease/backend/go-services/pkg/metrics"
	"github.com/legalease/legalease/backend/go-services/pkg/middleware"
)

// RegisterDocumentRoutes wires the saved-document routes. Each client sees
// only its own slot of the store.
func RegisterDocumentRoutes(r *gin.Engine, stores *service.Manager, pipeline *export.Pipeline) {
	store := func(c *gin.Context) (service.Service, bool) {
		svc, err := stores.Get(middleware.ClientID(c))
		if err != nil {
			logger.Errorf("document store: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "document store unavailable"})
			return nil, false
		}
		return svc, true
	}

	r.GET("/api/documents", func(c *gin.Context) {
		svc, ok := store(c)
		if !ok {
			return
		}
		list, err := svc.List()
		if err != nil {
			logger.Errorf("list documents: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
			return
		}
		out := make([]map[string]interface{}, 0, len(list))
		for _, d := range list {
			out = append(out, map[string]interface{}{
				"id":        d.ID,
				"filename":  d.Filename,
				"createdAt": d.CreatedAt,
				"date":      d.DisplayDate(),
			})
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/api/documents/:id", func(c *gin.Context) {
		svc, ok := store(c)
		if !ok {
			return
		}
		d, err := svc.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":        d.ID,
			"filename":  d.Filename,
			"content":   d.Content,
			"createdAt": d.CreatedAt,
			"date":      d.DisplayDate(),
		})
	})

	r.DELETE("/api/documents/:id", func(c *gin.Context) {
		svc, ok := store(c)
		if !ok {
			return
		}
		// removal is idempotent: deleting an absent id is still a 204
		if err := svc.Remove(c.Param("id")); err != nil {
			logger.Errorf("remove document: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove document"})
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Export renders the saved document to PDF. The optional POST body
	// overrides content and language so in-browser edits can be exported
	// without being saved first; GET exports the stored copy as-is.
	exportDoc := func(c *gin.Context) {
		svc, ok := store(c)
		if !ok {
			return
		}
		d, err := svc.Get(c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			logger.Errorf("get document: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document"})
			return
		}

		var req struct {
			Content  *string `json:"content"`
			Language string  `json:"language"`
			Filename string  `json:"filename"`
		}
		if c.Request.Method == http.MethodPost {
			_ = c.ShouldBindJSON(&req)
		}

		content := d.Content
		if req.Content != nil {
			content = *req.Content
		}
		language := req.Language
		if language == "" {
			language = "en"
		}
		filename := d.Filename
		if req.Filename != "" {
			filename = export.EnsurePDFExt(req.Filename)
		}

		pdf, err := pipeline.Render(content, filename, language)
		if err != nil {
			logger.Errorf("export document %s: %v", d.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export document"})
			return
		}

		metrics.DocumentsExported.Inc()
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
	r.GET("/api/documents/:id/export", exportDoc)
	r.POST("/api/documents/:id/export", exportDoc)
}
