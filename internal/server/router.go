package server

import "github.com/gin-gonic/gin"

// NewRouter wires the API routes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/chat", h.Chat)
		api.POST("/search", h.Search)
		api.GET("/chat/:conversationId", h.History)
		api.DELETE("/chat/:conversationId", h.ClearConversation)
	}

	return r
}
