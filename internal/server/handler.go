// Package server exposes the HTTP surface: the streaming chat endpoint, the
// direct search endpoint, and conversation management.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"loomii/internal/agent"
	"loomii/internal/logging"
	"loomii/internal/retrieval"
)

// conversationIDHeader carries the id back to clients that did not supply
// one, so follow-up requests can continue the conversation.
const conversationIDHeader = "X-Conversation-ID"

// Handler serves the chat API.
type Handler struct {
	agent    *agent.Agent
	docCount func() int
}

// NewHandler creates the handler. docCount reports indexed documents for the
// health endpoint; nil is allowed.
func NewHandler(a *agent.Agent, docCount func() int) *Handler {
	return &Handler{agent: a, docCount: docCount}
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

// Chat streams the hybrid response: plain text tokens followed by the framed
// card metadata, over one chunked response body.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	c.Header(conversationIDHeader, conversationID)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	err := h.agent.StreamResponse(c.Request.Context(), conversationID, req.Message, c.Writer)
	if err == nil {
		return
	}

	logging.ServerError("chat stream failed: %v", err)
	if c.Writer.Written() {
		// Tokens already went out; the early close is the error signal.
		return
	}
	status := http.StatusInternalServerError
	if errors.Is(err, retrieval.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": "Internal server error"})
}

// Search runs one retrieval strategy and returns the result set as JSON.
func (h *Handler) Search(c *gin.Context) {
	var req agent.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := h.agent.Search(c.Request.Context(), req)
	if err != nil {
		logging.ServerError("search failed: %v", err)
		if errors.Is(err, retrieval.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is temporarily unavailable"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns the conversation's messages.
func (h *Handler) History(c *gin.Context) {
	id := c.Param("conversationId")
	c.JSON(http.StatusOK, gin.H{
		"conversationId": id,
		"history":        h.agent.History(id),
	})
}

// ClearConversation truncates the conversation.
func (h *Handler) ClearConversation(c *gin.Context) {
	id := c.Param("conversationId")
	h.agent.Clear(id)
	c.JSON(http.StatusOK, gin.H{"conversationId": id, "cleared": true})
}

// Health reports liveness and index size.
func (h *Handler) Health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if h.docCount != nil {
		resp["documents"] = h.docCount()
	}
	c.JSON(http.StatusOK, resp)
}
