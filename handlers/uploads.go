package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/legalease/legalease/backend/go-services/internal/chat"
	"github.com/legalease/legalease/backend/go-services/internal/storage"
	"github.com/legalease/legalease/backend/go-services/pkg/logger"
	"github.com/legalease/legalease/backend/go-services/pkg/middleware"
)

// maxUploadBytes caps chat attachments at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler stores chat attachments in object storage and acknowledges
// them in the conversation.
type UploadHandler struct {
	store *storage.MinIOStorage
	chats *chat.Manager
}

func NewUploadHandler(store *storage.MinIOStorage, chats *chat.Manager) *UploadHandler {
	return &UploadHandler{store: store, chats: chats}
}

// Register wires the upload route.
func (h *UploadHandler) Register(r *gin.Engine) {
	r.POST("/api/chat/upload", h.Upload)
}

// Upload accepts one multipart file under the "file" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	key := storage.ChatUploadKey(fh.Filename, time.Now())
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.store.UploadFile(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		logger.Errorf("chat upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	// presigned URL is best effort; the ack still works without it
	url, err := h.store.GetPresignedURL(c.Request.Context(), key, time.Hour)
	if err != nil {
		logger.Warnf("chat upload presign: %v", err)
		url = ""
	}

	sess := h.chats.Get(c.Request.Context(), middleware.ClientID(c))
	ack := sess.RecordUpload(c.Request.Context(), fh.Filename, url)
	c.JSON(http.StatusOK, gin.H{"reply": ack, "key": key})
}
