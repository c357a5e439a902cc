package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legalease/legalease/backend/go-services/internal/chat"
	"github.com/legalease/legalease/backend/go-services/internal/llm"
	"github.com/legalease/legalease/backend/go-services/pkg/metrics"
	"github.com/legalease/legalease/backend/go-services/pkg/middleware"
)

// ChatHandler drives the legal-assistant conversation.
type ChatHandler struct {
	drafter llm.Drafter
	chats   *chat.Manager
}

func NewChatHandler(drafter llm.Drafter, chats *chat.Manager) *ChatHandler {
	return &ChatHandler{drafter: drafter, chats: chats}
}

// Register wires the chat routes.
func (h *ChatHandler) Register(r *gin.Engine) {
	r.POST("/api/chat", h.Ask)
	r.GET("/api/chat/history", h.History)
}

// Ask sends one prompt to the assistant and returns the reply.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Prompt == "" {
		metrics.ChatTurns.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"reply": "Prompt is required"})
		return
	}

	sess := h.chats.Get(c.Request.Context(), middleware.ClientID(c))
	reply, err := sess.Ask(c.Request.Context(), h.drafter, req.Prompt)
	if err != nil {
		if errors.Is(err, chat.ErrAwaitingReply) {
			metrics.ChatTurns.WithLabelValues("busy").Inc()
			c.JSON(http.StatusConflict, gin.H{"reply": "Please wait for the current reply to finish."})
			return
		}
		// reply already carries the apology text
		metrics.ChatTurns.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"reply": reply})
		return
	}
	metrics.ChatTurns.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// History returns the caller's transcript in order.
func (h *ChatHandler) History(c *gin.Context) {
	sess := h.chats.Get(c.Request.Context(), middleware.ClientID(c))
	c.JSON(http.StatusOK, gin.H{"messages": sess.Messages()})
}
