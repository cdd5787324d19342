package models

import (
	"time"

	"gorm.io/gorm"
)

// Firm roles. Authorization is an exact string match against per-route
// allow-lists; there is no hierarchy between roles.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleClient   = "client"
	RoleEmployee = "employee"
	RoleOperator = "operator"
	RoleHelper   = "helper"

	// Master-department desks. Distinct roles, not a wildcard.
	RoleMasterGST       = "master_gst"
	RoleMasterIncomeTax = "master_income_tax"
	RoleMasterAudit     = "master_audit"
	RoleMasterAccounts  = "master_accounts"
	RoleMasterPayroll   = "master_payroll"
)

// AllRoles lists every role the firm recognizes.
var AllRoles = []string{
	RoleAdmin, RoleManager, RoleClient, RoleEmployee, RoleOperator, RoleHelper,
	RoleMasterGST, RoleMasterIncomeTax, RoleMasterAudit, RoleMasterAccounts, RoleMasterPayroll,
}

// MasterRoles are the five master-department desks.
var MasterRoles = []string{
	RoleMasterGST, RoleMasterIncomeTax, RoleMasterAudit, RoleMasterAccounts, RoleMasterPayroll,
}

// BuilderRoles may create and edit form definitions.
var BuilderRoles = []string{RoleAdmin, RoleManager}

// IsValidRole reports whether role is one of the firm's roles.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a portal account.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string         `gorm:"size:255" json:"-"` // Hashed password, empty for LDAP users
	Email     string         `gorm:"size:255" json:"email"`
	FullName  string         `gorm:"size:150" json:"full_name"`
	Phone     string         `gorm:"size:30" json:"phone"`
	Role      string         `gorm:"size:50;default:client" json:"role"`
	AuthType  string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
