package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerline/firmdesk/backend/internal/config"
	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

type AssistantHandler struct {
	assistantService *services.AssistantService
}

func NewAssistantHandler(cfg *config.Config) *AssistantHandler {
	return &AssistantHandler{
		assistantService: services.NewAssistantService(cfg.Assistant),
	}
}

// GetConfig reports whether the assistant is available
// GET /api/assistant/config
func (h *AssistantHandler) GetConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"enabled": h.assistantService.Enabled(),
	})
}

// Chat relays a conversation to the configured LLM provider
// POST /api/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reply, err := h.assistantService.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"reply": reply})
}
