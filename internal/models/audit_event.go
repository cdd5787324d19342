package models

import "time"

// AuditEvent is an immutable record of a mutating action. Append-only;
// the only deletion path is the admin-gated bulk clear.
type AuditEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ActorUserID *uint     `gorm:"index" json:"actor_user_id"`
	ActorName   string    `gorm:"size:100" json:"actor_name"`
	Action      string    `gorm:"size:200;index" json:"action"`
	Message     string    `gorm:"type:text" json:"message"`
	Details     string    `gorm:"type:text" json:"details"` // JSON payload
	IP          string    `gorm:"size:50" json:"ip"`
	UserAgent   string    `gorm:"size:500" json:"user_agent"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string { return "audit_events" }
