package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/internal/services"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// SSE connections
	sseClients := services.GetEventHub().ClientCount()

	// Submissions awaiting review
	var pendingCount int64
	models.GetDB().Model(&models.Submission{}).
		Where("status = ?", models.SubmissionStatusPending).
		Count(&pendingCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "firmdesk",
		"components": gin.H{
			"database":            dbStatus,
			"queue_mode":          queueMode,
			"sse_clients":         sseClients,
			"pending_submissions": pendingCount,
		},
	})
}
