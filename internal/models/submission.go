package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Submission review statuses.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusReviewed = "reviewed"
)

// FieldResponse binds a field id to the submitted value. Signature fields
// carry the value as an inline data-URI payload.
type FieldResponse struct {
	FieldID string `json:"field_id"`
	Value   string `json:"value"`
}

// ResponseList is an ordered list of field responses stored as JSON text.
type ResponseList []FieldResponse

func (r ResponseList) Value() (driver.Value, error) {
	if r == nil {
		r = ResponseList{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *ResponseList) Scan(value interface{}) error {
	if value == nil {
		*r = ResponseList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for ResponseList")
	}
	if len(data) == 0 {
		*r = ResponseList{}
		return nil
	}
	return json.Unmarshal(data, r)
}

// Submission is one user's answer set for a form at a point in time.
// FormID is a reference, not an embedded copy: display always re-joins
// against the current form's fields. Immutable once created except Status.
type Submission struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	FormID      uint         `gorm:"index;not null" json:"form_id"`
	UserID      uint         `gorm:"index;not null" json:"user_id"`
	Responses   ResponseList `gorm:"type:text" json:"responses"`
	Status      string       `gorm:"size:20;default:pending;index" json:"status"`
	SubmittedAt time.Time    `gorm:"index" json:"submitted_at"`
}

func (Submission) TableName() string { return "submissions" }
