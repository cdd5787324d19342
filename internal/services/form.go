package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
	"gorm.io/gorm"
)

type FormService struct {
	db *gorm.DB
}

func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

type FieldInput struct {
	ID       string   `json:"id"`
	Type     string   `json:"type" binding:"required"`
	Label    string   `json:"label" binding:"required"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

type CreateFormRequest struct {
	Title        string       `json:"title" binding:"required"`
	Fields       []FieldInput `json:"fields"`
	IsCompulsory bool         `json:"is_compulsory"`
	Deadline     *time.Time   `json:"deadline"`
	CategoryID   *uint        `json:"category_id"`
	Status       string       `json:"status"`
}

// UpdateFormRequest carries the full replacement document. Editing one
// field re-sends the whole field list; there is no partial-field patching.
type UpdateFormRequest struct {
	Title        string       `json:"title" binding:"required"`
	Fields       []FieldInput `json:"fields"`
	IsCompulsory bool         `json:"is_compulsory"`
	Deadline     *time.Time   `json:"deadline"`
	CategoryID   *uint        `json:"category_id"`
	Status       string       `json:"status"`
}

type FormListRequest struct {
	Status     string `form:"status"`
	CategoryID *uint  `form:"category_id"`
}

// buildFieldList validates field inputs and assigns ids where missing.
// A zero-field form is allowed: it behaves as a no-op form.
func buildFieldList(inputs []FieldInput) (models.FieldList, error) {
	fields := make(models.FieldList, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for _, in := range inputs {
		if !models.IsValidFieldType(in.Type) {
			return nil, response.NewValidation("unknown field type: "+in.Type, nil)
		}
		if strings.TrimSpace(in.Label) == "" {
			return nil, response.NewValidation("field label must not be empty", nil)
		}

		id := in.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, dup := seen[id]; dup {
			return nil, response.NewValidation("duplicate field id: "+id, nil)
		}
		seen[id] = struct{}{}

		var options []string
		if in.Type == models.FieldTypeDropdown {
			options = in.Options
		}

		fields = append(fields, models.FormField{
			ID:       id,
			Type:     in.Type,
			Label:    in.Label,
			Required: in.Required,
			Options:  options,
		})
	}

	return fields, nil
}

func normalizeFormStatus(status string) (string, error) {
	switch status {
	case "":
		return models.FormStatusDraft, nil
	case models.FormStatusDraft, models.FormStatusSent:
		return status, nil
	}
	return "", response.NewValidation("invalid form status: "+status, nil)
}

// Create builds a new form definition.
func (s *FormService) Create(req *CreateFormRequest, createdBy uint) (*models.Form, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, response.NewValidation("form title must not be empty", nil)
	}

	status, err := normalizeFormStatus(req.Status)
	if err != nil {
		return nil, err
	}

	fields, err := buildFieldList(req.Fields)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		var count int64
		s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count)
		if count == 0 {
			return nil, response.NewNotFound("category not found")
		}
	}

	form := models.Form{
		Title:        req.Title,
		Fields:       fields,
		IsCompulsory: req.IsCompulsory,
		Deadline:     req.Deadline,
		CategoryID:   req.CategoryID,
		Status:       status,
		CreatedBy:    createdBy,
	}

	if err := s.db.Create(&form).Error; err != nil {
		return nil, err
	}

	return &form, nil
}

// Update replaces the form document wholesale.
func (s *FormService) Update(id uint, req *UpdateFormRequest) (*models.Form, error) {
	var form models.Form
	if err := s.db.First(&form, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("form not found")
		}
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, response.NewValidation("form title must not be empty", nil)
	}

	status, err := normalizeFormStatus(req.Status)
	if err != nil {
		return nil, err
	}

	fields, err := buildFieldList(req.Fields)
	if err != nil {
		return nil, err
	}

	form.Title = req.Title
	form.Fields = fields
	form.IsCompulsory = req.IsCompulsory
	form.Deadline = req.Deadline
	form.CategoryID = req.CategoryID
	form.Status = status

	if err := s.db.Save(&form).Error; err != nil {
		return nil, err
	}

	return &form, nil
}

// Delete hard-deletes a form. Existing submissions are not cascaded;
// their form_id resolves to "form not found" at render time.
func (s *FormService) Delete(id uint) error {
	result := s.db.Delete(&models.Form{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("form not found")
	}
	return nil
}

// GetByID returns a form by id.
func (s *FormService) GetByID(id uint) (*models.Form, error) {
	var form models.Form
	if err := s.db.First(&form, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("form not found")
		}
		return nil, err
	}
	return &form, nil
}

// List returns forms, optionally filtered by status and category.
func (s *FormService) List(req *FormListRequest) ([]models.Form, error) {
	query := s.db.Model(&models.Form{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.CategoryID != nil {
		query = query.Where("category_id = ?", *req.CategoryID)
	}

	var forms []models.Form
	if err := query.Order("created_at DESC").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}
