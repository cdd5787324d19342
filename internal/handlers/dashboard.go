package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ledgerline/firmdesk/backend/internal/middleware"
	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// GetCatalog returns the component catalog for the caller's role
// GET /api/dashboard/catalog
func (h *DashboardHandler) GetCatalog(c *gin.Context) {
	response.Success(c, services.GetCatalog(middleware.GetRole(c)))
}

// GetConfig returns the caller's dashboard configuration
// GET /api/dashboard/config
func (h *DashboardHandler) GetConfig(c *gin.Context) {
	cfg, err := h.dashboardService.GetConfig(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, cfg)
}

// GetUserConfig returns another user's dashboard configuration (admin)
// GET /api/users/:id/dashboard
func (h *DashboardHandler) GetUserConfig(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	cfg, err := h.dashboardService.GetConfig(uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, cfg)
}

// SetUserComponent toggles a component on another user's dashboard (admin)
// PUT /api/users/:id/dashboard/components
func (h *DashboardHandler) SetUserComponent(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.SetComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.dashboardService.SetComponentEnabled(uint(userID), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, cfg)
}

// ReorderUserTabs replaces a user's dashboard tab order (admin)
// PUT /api/users/:id/dashboard/tabs
func (h *DashboardHandler) ReorderUserTabs(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.ReorderTabsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.dashboardService.ReorderTabs(uint(userID), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, cfg)
}
