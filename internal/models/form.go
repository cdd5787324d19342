package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Form field types.
const (
	FieldTypeText      = "text"
	FieldTypeFile      = "file"
	FieldTypeDropdown  = "dropdown"
	FieldTypeSignature = "digitalSignature"
)

// Form statuses.
const (
	FormStatusDraft = "draft"
	FormStatusSent  = "sent"
)

// FormField is a single typed input definition owned by its parent Form.
// Options is only meaningful for dropdown fields.
type FormField struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// IsValidFieldType reports whether t is a supported field type.
func IsValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeFile, FieldTypeDropdown, FieldTypeSignature:
		return true
	}
	return false
}

// FieldList is an ordered list of form fields stored as a JSON text column.
// Order is significant: it defines display and response-matching order.
type FieldList []FormField

func (f FieldList) Value() (driver.Value, error) {
	if f == nil {
		f = FieldList{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FieldList) Scan(value interface{}) error {
	if value == nil {
		*f = FieldList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for FieldList")
	}
	if len(data) == 0 {
		*f = FieldList{}
		return nil
	}
	return json.Unmarshal(data, f)
}

// Find returns the field with the given id, or false when the field no
// longer exists in the list.
func (f FieldList) Find(fieldID string) (FormField, bool) {
	for _, field := range f {
		if field.ID == fieldID {
			return field, true
		}
	}
	return FormField{}, false
}

// Form is a named, ordered set of field definitions plus metadata.
type Form struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Fields       FieldList  `gorm:"type:text" json:"fields"`
	IsCompulsory bool       `gorm:"default:false" json:"is_compulsory"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CategoryID   *uint      `gorm:"index" json:"category_id,omitempty"`
	Status       string     `gorm:"size:20;default:draft;index" json:"status"`
	CreatedBy    uint       `gorm:"index" json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Form) TableName() string { return "forms" }
