package models

import "time"

// Category is a flat tag used to classify forms. No update operation;
// categories are created and deleted whole.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:150;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }
