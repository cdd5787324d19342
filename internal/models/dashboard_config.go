package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ComponentKeyList is a set of enabled dashboard component keys stored as JSON.
type ComponentKeyList []string

func (l ComponentKeyList) Value() (driver.Value, error) {
	if l == nil {
		l = ComponentKeyList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ComponentKeyList) Scan(value interface{}) error {
	return scanJSONColumn(value, l)
}

// Contains reports whether key is in the list.
func (l ComponentKeyList) Contains(key string) bool {
	for _, k := range l {
		if k == key {
			return true
		}
	}
	return false
}

// DashboardTab is one ordered tab entry on a user's dashboard.
type DashboardTab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TabList is an ordered list of dashboard tabs stored as JSON.
type TabList []DashboardTab

func (l TabList) Value() (driver.Value, error) {
	if l == nil {
		l = TabList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TabList) Scan(value interface{}) error {
	return scanJSONColumn(value, l)
}

func scanJSONColumn(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSON column")
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// DashboardConfig is the per-user record of enabled catalog components and
// tab order. It is the single source of truth for a user's dashboard state;
// the user record never duplicates it. Created lazily on first admin edit.
type DashboardConfig struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UserID            uint             `gorm:"uniqueIndex;not null" json:"user_id"`
	EnabledComponents ComponentKeyList `gorm:"type:text" json:"enabled_components"`
	Tabs              TabList          `gorm:"type:text" json:"tabs"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (DashboardConfig) TableName() string { return "dashboard_configs" }
