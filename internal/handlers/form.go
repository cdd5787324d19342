package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ledgerline/firmdesk/backend/internal/middleware"
	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

type FormHandler struct {
	formService *services.FormService
}

func NewFormHandler(db *gorm.DB) *FormHandler {
	return &FormHandler{
		formService: services.NewFormService(db),
	}
}

// List returns forms matching the optional status and category filters
// GET /api/forms
func (h *FormHandler) List(c *gin.Context) {
	var req services.FormListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	forms, err := h.formService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, forms)
}

// GetByID returns a form by ID
// GET /api/forms/:id
func (h *FormHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid form id")
		return
	}

	form, err := h.formService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, form)
}

// Create builds a new form
// POST /api/forms
func (h *FormHandler) Create(c *gin.Context) {
	var req services.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	form, err := h.formService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, form)
}

// Update replaces a form's definition wholesale
// PUT /api/forms/:id
func (h *FormHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid form id")
		return
	}

	var req services.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	form, err := h.formService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, form)
}

// Delete removes a form
// DELETE /api/forms/:id
func (h *FormHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid form id")
		return
	}

	if err := h.formService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "form deleted"})
}
