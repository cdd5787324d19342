package services

import (
	"errors"
	"strings"
	"time"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
	"gorm.io/gorm"
)

type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

type ResponseInput struct {
	FieldID string `json:"field_id" binding:"required"`
	Value   string `json:"value"`
}

type SubmitRequest struct {
	FormID    uint            `json:"form_id" binding:"required"`
	Responses []ResponseInput `json:"responses"`
}

// MissingRequiredFields validates responses against the form's required
// fields and returns the labels of EVERY missing one, not just the first.
func MissingRequiredFields(fields models.FieldList, responses []ResponseInput) []string {
	byField := make(map[string]string, len(responses))
	for _, r := range responses {
		byField[r.FieldID] = r.Value
	}

	var missing []string
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if v, ok := byField[f.ID]; !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// Submit validates and stores one user's answer set for a form. Multiple
// submissions per (user, form) are permitted.
func (s *SubmissionService) Submit(req *SubmitRequest, userID uint) (*models.Submission, error) {
	var form models.Form
	if err := s.db.First(&form, req.FormID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("form not found")
		}
		return nil, err
	}

	if missing := MissingRequiredFields(form.Fields, req.Responses); len(missing) > 0 {
		return nil, response.NewValidation("missing required fields", missing)
	}

	responses := make(models.ResponseList, 0, len(req.Responses))
	for _, r := range req.Responses {
		responses = append(responses, models.FieldResponse{FieldID: r.FieldID, Value: r.Value})
	}

	submission := models.Submission{
		FormID:      req.FormID,
		UserID:      userID,
		Responses:   responses,
		Status:      models.SubmissionStatusPending,
		SubmittedAt: time.Now(),
	}

	if err := s.db.Create(&submission).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// ListByForm returns a form's submissions ordered oldest first.
func (s *SubmissionService) ListByForm(formID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.db.Where("form_id = ?", formID).Order("submitted_at ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// ListByUser returns a user's submissions, oldest first.
func (s *SubmissionService) ListByUser(userID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.db.Where("user_id = ?", userID).Order("submitted_at ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// MarkReviewed transitions a submission from pending to reviewed.
func (s *SubmissionService) MarkReviewed(id uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("submission not found")
		}
		return nil, err
	}

	submission.Status = models.SubmissionStatusReviewed
	if err := s.db.Save(&submission).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// RenderedResponse is one displayable answer, joined against the current
// form's field definition.
type RenderedResponse struct {
	FieldID string `json:"field_id"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	Value   string `json:"value"`
}

// RenderedSubmission is a submission joined against the CURRENT form
// document, ready for display or export.
type RenderedSubmission struct {
	SubmissionID uint               `json:"submission_id"`
	FormID       uint               `json:"form_id"`
	FormTitle    string             `json:"form_title"`
	UserID       uint               `json:"user_id"`
	Status       string             `json:"status"`
	SubmittedAt  time.Time          `json:"submitted_at"`
	Responses    []RenderedResponse `json:"responses"`
}

// RenderResponses joins each response against the given field list.
// Responses whose field has since been removed from the form are silently
// omitted; this is "field not found", not an error.
func RenderResponses(fields models.FieldList, responses models.ResponseList) []RenderedResponse {
	rendered := make([]RenderedResponse, 0, len(responses))
	for _, r := range responses {
		field, ok := fields.Find(r.FieldID)
		if !ok {
			continue
		}
		rendered = append(rendered, RenderedResponse{
			FieldID: field.ID,
			Label:   field.Label,
			Type:    field.Type,
			Value:   r.Value,
		})
	}
	return rendered
}

// Render resolves a submission for display or export. A deleted form
// behind the submission yields NotFound, never a crash.
func (s *SubmissionService) Render(id uint) (*RenderedSubmission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("submission not found")
		}
		return nil, err
	}

	var form models.Form
	if err := s.db.First(&form, submission.FormID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("form not found")
		}
		return nil, err
	}

	return &RenderedSubmission{
		SubmissionID: submission.ID,
		FormID:       form.ID,
		FormTitle:    form.Title,
		UserID:       submission.UserID,
		Status:       submission.Status,
		SubmittedAt:  submission.SubmittedAt,
		Responses:    RenderResponses(form.Fields, submission.Responses),
	}, nil
}

// HasSubmission reports whether userID has at least one submission for formID.
func (s *SubmissionService) HasSubmission(formID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Submission{}).
		Where("form_id = ? AND user_id = ?", formID, userID).
		Count(&count).Error
	return count > 0, err
}
