package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/chat"
	"github.com/yourhome-ai/yourhome/internal/domain"
)

// ChatHandler handles tenant chatbot sessions. All chat routes sit behind the
// subscription gate.
type ChatHandler struct {
	manager *chat.Manager
}

// NewChatHandler creates a new chat handler
func NewChatHandler(manager *chat.Manager) *ChatHandler {
	return &ChatHandler{manager: manager}
}

// RegisterRoutes registers chat routes
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sessions", h.CreateSession)
	r.POST("/sessions/:id/messages", h.Ask)
	r.GET("/sessions/:id/messages", h.Transcript)
	r.POST("/sessions/:id/reset", h.Reset)
	r.DELETE("/sessions/:id", h.CloseSession)
}

// CreateSession opens a chat session scoped to one tenant's documents
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req domain.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.Create(c.Request.Context(), req.Address, req.Tenant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"address":    session.Address,
		"tenant":     session.Tenant,
	})
}

// Ask relays a question and streams the answer back over SSE
func (h *ChatHandler) Ask(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	stream, err := session.Ask(c.Request.Context(), req.Message)
	if err != nil {
		writeSSE(c.Writer, "error", err.Error())
		return
	}

	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-stream
		if !ok {
			return false
		}
		data, _ := json.Marshal(chunk)
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", chunk.Type, string(data))
		return chunk.Type != "done" && chunk.Type != "error"
	})
}

// Transcript returns the visible conversation for a session
func (h *ChatHandler) Transcript(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": session.Transcript()})
}

// Reset clears the visible conversation; the retrieval index is kept
func (h *ChatHandler) Reset(c *gin.Context) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	session.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// CloseSession discards a session and its retrieval index
func (h *ChatHandler) CloseSession(c *gin.Context) {
	if err := h.manager.Close(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

func writeSSE(w io.Writer, eventType, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data)
}
