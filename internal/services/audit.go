package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/logger"
	"gorm.io/gorm"
)

var auditDB *gorm.DB

// InitAuditRecorder wires the package-level audit recorder to the database.
func InitAuditRecorder(db *gorm.DB) {
	auditDB = db
}

// RecordAudit appends an AuditEvent and publishes it to subscribed admin
// viewers. It never returns an error: a failed write or a slow subscriber
// must not fail the mutation that triggered it.
func RecordAudit(actorID *uint, actorName, action, message, ip, userAgent string, details interface{}) {
	if auditDB == nil {
		return
	}

	var detailStr string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailStr = string(b)
		}
	}

	event := models.AuditEvent{
		ActorUserID: actorID,
		ActorName:   actorName,
		Action:      action,
		Message:     message,
		Details:     detailStr,
		IP:          ip,
		UserAgent:   userAgent,
		CreatedAt:   time.Now(),
	}

	if err := auditDB.Create(&event).Error; err != nil {
		logger.Warn().Err(err).Str("action", action).Msg("audit record write failed")
		return
	}

	GetEventHub().Publish(AuditEventMessage{
		ID:        event.ID,
		Action:    event.Action,
		ActorName: event.ActorName,
		Message:   event.Message,
		CreatedAt: event.CreatedAt,
	})
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

type AuditListRequest struct {
	Page      int    `form:"page" binding:"min=1"`
	PageSize  int    `form:"page_size" binding:"min=1,max=100"`
	Action    string `form:"action"`
	ActorID   *uint  `form:"actor_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

type AuditListResponse struct {
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Items    []models.AuditEvent `json:"items"`
}

// List returns paginated audit events. All provided filters are conjunctive;
// search matches the message case-insensitively.
func (s *AuditService) List(req *AuditListRequest) (*AuditListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var events []models.AuditEvent
	var total int64

	query := s.db.Model(&models.AuditEvent{})

	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}
	if req.ActorID != nil {
		query = query.Where("actor_user_id = ?", *req.ActorID)
	}
	if req.StartDate != "" {
		query = query.Where("created_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("created_at <= ?", req.EndDate+" 23:59:59")
	}
	if req.Search != "" {
		query = query.Where("LOWER(message) LIKE ?", "%"+strings.ToLower(req.Search)+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}

	return &AuditListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    events,
	}, nil
}

// GetActions returns the distinct action codes present in the log.
func (s *AuditService) GetActions() ([]string, error) {
	var actions []string
	if err := s.db.Model(&models.AuditEvent{}).Distinct("action").Pluck("action", &actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

// ClearAll deletes every audit event. It deliberately does not record an
// audit event of its own.
func (s *AuditService) ClearAll() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&models.AuditEvent{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
