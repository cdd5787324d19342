package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusVoided  = "voided"
)

// Payment is the bookkeeping record behind the portal's payment page.
// AmountCents keeps the amount as an integer to avoid float rounding.
// The gateway transaction itself happens outside this service; GatewayRef
// stores whatever reference the gateway returned.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	InvoiceRef  string     `gorm:"size:100" json:"invoice_ref"`
	Description string     `gorm:"size:255" json:"description"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	Currency    string     `gorm:"size:3;default:INR" json:"currency"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"`
	GatewayRef  string     `gorm:"size:150" json:"gateway_ref,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
