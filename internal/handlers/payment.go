package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ledgerline/firmdesk/backend/internal/middleware"
	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{
		paymentService: services.NewPaymentService(db),
	}
}

// CreateForUser raises a pending payment against a client account
// POST /api/users/:id/payments
func (h *PaymentHandler) CreateForUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.Create(&req, uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, payment)
}

// List returns payments, optionally filtered by status
// GET /api/payments
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentService.List(c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, payments)
}

// ListMine returns the caller's own payments
// GET /api/payments/mine
func (h *PaymentHandler) ListMine(c *gin.Context) {
	payments, err := h.paymentService.ListByUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, payments)
}

// MarkPaid records a gateway settlement against a pending payment
// PUT /api/payments/:id/paid
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}

	var req services.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.MarkPaid(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, payment)
}
