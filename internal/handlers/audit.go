package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{
		auditService: services.NewAuditService(db),
	}
}

// List returns paginated audit events, newest first
// GET /api/audit
func (h *AuditHandler) List(c *gin.Context) {
	var req services.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auditService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetActions returns the distinct action names seen in the log
// GET /api/audit/actions
func (h *AuditHandler) GetActions(c *gin.Context) {
	actions, err := h.auditService.GetActions()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, actions)
}

// ClearAll wipes the audit log. The wipe itself is not recorded.
// DELETE /api/audit
func (h *AuditHandler) ClearAll(c *gin.Context) {
	deleted, err := h.auditService.ClearAll()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}
