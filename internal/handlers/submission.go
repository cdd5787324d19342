package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ledgerline/firmdesk/backend/internal/middleware"
	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(db *gorm.DB) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: services.NewSubmissionService(db),
	}
}

// Submit files a client's responses against a form
// POST /api/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	submission, err := h.submissionService.Submit(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, submission)
}

// ListByForm returns all submissions for a form, oldest first
// GET /api/forms/:id/submissions
func (h *SubmissionHandler) ListByForm(c *gin.Context) {
	formID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid form id")
		return
	}

	submissions, err := h.submissionService.ListByForm(uint(formID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, submissions)
}

// ListMine returns the caller's own submissions
// GET /api/submissions/mine
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	submissions, err := h.submissionService.ListByUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, submissions)
}

// Render joins a submission against the current form definition
// GET /api/submissions/:id/rendered
func (h *SubmissionHandler) Render(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return
	}

	rendered, err := h.submissionService.Render(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, rendered)
}

// MarkReviewed flags a submission as reviewed by staff
// PUT /api/submissions/:id/review
func (h *SubmissionHandler) MarkReviewed(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return
	}

	submission, err := h.submissionService.MarkReviewed(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, submission)
}
