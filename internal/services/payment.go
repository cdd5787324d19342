package services

import (
	"errors"
	"time"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
	"gorm.io/gorm"
)

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

type CreatePaymentRequest struct {
	InvoiceRef  string `json:"invoice_ref"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Currency    string `json:"currency"`
}

// Create records a pending payment for the given user.
func (s *PaymentService) Create(req *CreatePaymentRequest, userID uint) (*models.Payment, error) {
	if req.AmountCents <= 0 {
		return nil, response.NewValidation("amount must be positive", nil)
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	payment := models.Payment{
		UserID:      userID,
		InvoiceRef:  req.InvoiceRef,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Status:      models.PaymentStatusPending,
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

type MarkPaidRequest struct {
	GatewayRef string `json:"gateway_ref"`
}

// MarkPaid records a successful gateway settlement against a pending payment.
func (s *PaymentService) MarkPaid(id uint, req *MarkPaidRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("payment not found")
		}
		return nil, err
	}

	if payment.Status == models.PaymentStatusPaid {
		return nil, response.NewConflict("payment already settled")
	}

	now := time.Now()
	payment.Status = models.PaymentStatusPaid
	payment.GatewayRef = req.GatewayRef
	payment.PaidAt = &now

	if err := s.db.Save(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

// ListByUser returns a user's payments, newest first.
func (s *PaymentService) ListByUser(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// List returns all payments, optionally filtered by status.
func (s *PaymentService) List(status string) ([]models.Payment, error) {
	query := s.db.Model(&models.Payment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
